package configuration

import (
	"github.com/desertwitch/syspal"
)

// Configuration file keys understood by [NewHandlerConfig].
const (
	KeyCopyBufferSize   = "SYSPAL_COPY_BUFFER_SIZE"
	KeyVerifyCopies     = "SYSPAL_VERIFY_COPIES"
	KeyDisableWholeCopy = "SYSPAL_DISABLE_WHOLE_FILE_COPY"
	KeyDisableClone     = "SYSPAL_DISABLE_CLONE"
	KeyDisableSendfile  = "SYSPAL_DISABLE_SENDFILE"
	KeyForceVectoredEmu = "SYSPAL_FORCE_VECTORED_EMULATION"
	KeyNonReentrantDirs = "SYSPAL_NONREENTRANT_DIR_STRATEGY"
)

// NewHandlerConfig maps a read configuration file onto a [syspal.Config].
// Absent keys keep the zero value, so the library defaults apply.
func NewHandlerConfig(provider *ConfigProviderImpl, envMap map[string]string) syspal.Config {
	cfg := syspal.Config{
		VerifyCopies:            provider.MapKeyToBool(envMap, KeyVerifyCopies),
		DisableWholeFileCopy:    provider.MapKeyToBool(envMap, KeyDisableWholeCopy),
		DisableClone:            provider.MapKeyToBool(envMap, KeyDisableClone),
		DisableSendfile:         provider.MapKeyToBool(envMap, KeyDisableSendfile),
		ForceVectoredEmulation:  provider.MapKeyToBool(envMap, KeyForceVectoredEmu),
		NonReentrantDirStrategy: provider.MapKeyToBool(envMap, KeyNonReentrantDirs),
	}

	if size := provider.MapKeyToInt(envMap, KeyCopyBufferSize); size > 0 {
		cfg.CopyBufferSize = size
	}

	return cfg
}
