package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
)

// ExtensionPrefix prefixes the name of external subcommands found in PATH.
const ExtensionPrefix = "bgt-"

// RunExtension attempts to find and execute an external bgt-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
//
// The extension receives the resolved configuration as BGT_* environment
// variables.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := ExtensionPrefix + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		slog.Debug("external command not found in PATH", "command", name, "error", err)
		return false, 0
	}

	cfg, err := LoadConfig(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return true, 1
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extensionEnv(cfg)...)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv returns the configuration as environment variables.
func extensionEnv(cfg *Config) []string {
	return []string{
		EnvPrefix + "_LEDGER_FILE=" + cfg.LedgerFile,
		EnvPrefix + "_CATEGORIES_FILE=" + cfg.CategoriesFile,
		EnvPrefix + "_CURRENCY=" + cfg.Currency,
		EnvPrefix + "_GOTENBERG_URL=" + cfg.GotenbergURL,
		EnvPrefix + "_VERBOSE=" + strconv.FormatBool(cfg.Verbose),
	}
}
