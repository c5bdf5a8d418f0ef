package configuration

import (
	"fmt"

	"github.com/joho/godotenv"
)

// GodotenvProvider is an implementation wrapping the Godotenv framework.
// The maps it reads carry the SYSPAL_* handler tunables consumed by
// [NewHandlerConfig].
type GodotenvProvider struct{}

// Read parses generic Unix-type key=value configuration files into a
// single merged map (map[key]value).
func (*GodotenvProvider) Read(filenames ...string) (map[string]string, error) {
	data, err := godotenv.Read(filenames...)
	if err != nil {
		return data, fmt.Errorf("(config-godotenv) %w", err)
	}

	return data, nil
}
