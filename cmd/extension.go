package cmd

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

const (
	EnvAccountFile = "INVESTO_ACCOUNT_FILE"
	EnvTickersFile = "INVESTO_TICKERS_FILE"
	EnvMarketDir   = "INVESTO_MARKET_DIR"
	EnvCurrency    = "INVESTO_CURRENCY"
	EnvVerbose     = "INVESTO_VERBOSE"
)

// RunExtension attempts to find and execute an external investo-<subcommand>
// binary. It returns (true, exitCode) if an extension was found and
// executed, and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "investo-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Printf("External command %q not found in PATH: %v", externalCmdName, err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Pass the global flags as environment variables, so the extension sees
	// the same data files.
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, EnvAccountFile+"="+*accountFile)
	cmd.Env = append(cmd.Env, EnvTickersFile+"="+*tickersFile)
	cmd.Env = append(cmd.Env, EnvMarketDir+"="+*marketDir)
	cmd.Env = append(cmd.Env, EnvCurrency+"="+*currency)
	cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(*Verbose))

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}

	return true, 0
}
