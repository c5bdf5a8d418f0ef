// palprobe reports the platform capabilities detected by the abstraction
// layer on the running host and can exercise the copy engine against a
// real file pair for verification.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/desertwitch/syspal"
	"github.com/desertwitch/syspal/internal/configuration"
	"github.com/desertwitch/syspal/internal/syscalls"
	"github.com/dustin/go-humanize"
	"github.com/lmittmann/tint"
)

//nolint:gochecknoglobals
var (
	ExitCode = 0
	Version  string

	configFile = flag.String("config", "", "read tunables from this key=value file")
	copySrc    = flag.String("src", "", "copy this file to -dst as a probe run")
	copyDst    = flag.String("dst", "", "copy destination for the probe run")
	verify     = flag.Bool("verify", true, "verify probe copies with a checksum")
)

func setupLogging() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		}),
	))
}

func loadConfig() syspal.Config {
	cfg := syspal.Config{VerifyCopies: *verify}

	if *configFile == "" {
		return cfg
	}

	provider := &configuration.ConfigProviderImpl{
		GenericConfigReader: &configuration.GodotenvProvider{},
	}

	envMap, err := provider.ReadGeneric(*configFile)
	if err != nil {
		slog.Warn("Failed to read configuration file; using defaults.", "file", *configFile, "err", err)

		return cfg
	}

	cfg = configuration.NewHandlerConfig(provider, envMap)
	cfg.VerifyCopies = cfg.VerifyCopies || *verify

	return cfg
}

func reportCapabilities(h *syspal.Handler) {
	caps := h.Capabilities()

	slog.Info("Host capability report",
		"wholeFileCopy", caps.WholeFileCopy,
		"clone", caps.CloneFile,
		"sendfile", caps.Sendfile,
		"vectoredIO", caps.VectoredIO,
		"nanosecondTimes", caps.NanosecondTimes,
		"fallocate", caps.Fallocate,
		"fadvise", caps.Fadvise,
		"pipeSizing", caps.PipeSizing,
		"sharedMemory", caps.SharedMemory,
		"inotify", caps.Inotify,
		"hiddenFlag", caps.HiddenFlag,
	)

	pageSize, err := h.SysConf(syspal.SysConfPageSize)
	if err == nil {
		slog.Info("Host memory geometry", "pageSize", humanize.IBytes(uint64(pageSize)))
	}

	slog.Info("Directory enumeration", "scratchBytes", humanize.IBytes(uint64(h.ReadDirBufferSize())))
}

func probeCopy(h *syspal.Handler) error {
	srcFd, err := h.Open(*copySrc, syspal.OpenReadOnly|syspal.OpenCloseOnExec, 0)
	if err != nil {
		return err
	}
	defer h.Close(srcFd)

	var st syspal.FileStatus
	if err := h.FStat(srcFd, &st); err != nil {
		return err
	}

	dstFd, err := h.Open(*copyDst,
		syspal.OpenWriteOnly|syspal.OpenCreate|syspal.OpenTruncate|syspal.OpenCloseOnExec, 0o644)
	if err != nil {
		return err
	}
	defer h.Close(dstFd)

	start := time.Now()
	if err := h.CopyFile(srcFd, dstFd, st.Size); err != nil {
		return err
	}

	slog.Info("Probe copy complete.",
		"src", *copySrc,
		"dst", *copyDst,
		"size", humanize.IBytes(uint64(st.Size)),
		"took", time.Since(start),
	)

	return nil
}

func main() {
	defer func() {
		os.Exit(ExitCode)
	}()

	flag.Parse()
	setupLogging()

	slog.Info("palprobe starting...", "version", Version)

	h := syspal.NewHandler(syscalls.RealOS{}, syscalls.RealUnix{}, loadConfig())
	reportCapabilities(h)

	if *copySrc != "" && *copyDst != "" {
		if err := probeCopy(h); err != nil {
			slog.Error("Probe copy failed.", "err", err)
			ExitCode = 1
		}
	}
}
