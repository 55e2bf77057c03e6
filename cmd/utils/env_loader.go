package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	envFileFlag    = "--env-file"
	envFileEnvVar  = "ENV_FILE"
	defaultEnvFile = ".env"
)

// LoadEnvFile populates the process environment from a dotenv file and returns the path that was loaded, or "" when
// nothing was. The file is picked from the --env-file flag in args, then ENV_FILE, then ./.env. Variables already
// present in the environment are never overwritten, so WALLET_PRIVATE_KEY exported by the deployment wins over the
// file.
func LoadEnvFile(args []string) (string, error) {
	path, explicit := envFilePath(args)

	err := godotenv.Load(path)
	switch {
	case err == nil:
		return path, nil
	case !explicit && errors.Is(err, os.ErrNotExist):
		return "", nil
	default:
		return "", fmt.Errorf("loading env file %s: %w", path, err)
	}
}

// envFilePath reports the dotenv file to load and whether it was asked for explicitly.
func envFilePath(args []string) (string, bool) {
	if path := envFileFromArgs(args); path != "" {
		return absPath(path), true
	}
	if path := strings.TrimSpace(os.Getenv(envFileEnvVar)); path != "" {
		return absPath(path), true
	}
	return defaultEnvFile, false
}

// envFileFromArgs scans args for --env-file, since the file must be loaded before cobra parses the flags.
func envFileFromArgs(args []string) string {
	for i, arg := range args {
		if arg == envFileFlag {
			if i+1 < len(args) {
				return args[i+1]
			}
			return ""
		}
		if value, found := strings.CutPrefix(arg, envFileFlag+"="); found {
			return value
		}
	}
	return ""
}

func absPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
