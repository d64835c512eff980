package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
)

const (
	EnvPortfolioFile = "TRADE_PORTFOLIO_FILE"
	EnvLogFile       = "TRADE_LOG_FILE"
	EnvDataDir       = "TRADE_DATA_DIR"
	EnvSymbols       = "TRADE_SYMBOLS"
	EnvInitialCash   = "TRADE_INITIAL_CASH"
	EnvCurrency      = "TRADE_CURRENCY"
	EnvQuotes        = "TRADE_QUOTES"
	EnvQuotesPath    = "TRADE_QUOTES_PATH"
	EnvVerbose       = "TRADE_VERBOSE"
)

// ExtensionEnv returns the global flags as environment variables, the way
// extensions receive them.
func ExtensionEnv() []string {
	return []string{
		EnvPortfolioFile + "=" + *portfolioFile,
		EnvLogFile + "=" + *logFile,
		EnvDataDir + "=" + *dataDir,
		EnvSymbols + "=" + *symbols,
		EnvInitialCash + "=" + *initialCash,
		EnvCurrency + "=" + *currency,
		EnvQuotes + "=" + *quotes,
		EnvQuotesPath + "=" + *quotesPath,
		EnvVerbose + "=" + strconv.FormatBool(*Verbose),
	}
}

// RunExtension attempts to find and execute an external trade-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "trade-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Printf("External command %q not found in PATH: %v", externalCmdName, err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), ExtensionEnv()...)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}

	return true, 0
}
