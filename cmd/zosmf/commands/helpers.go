package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/spf13/viper"
	"github.com/wmcgee3/z-osmf-go/pkg/zosmf"
	"github.com/wmcgee3/z-osmf-go/pkg/zosmfclient"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Common static errors used throughout the commands package.
var (
	ErrHostRequired          = errors.New("z/OSMF host is required (use --host, ZOSMF_HOST, or 'zosmf login')")
	ErrUsernameRequired      = errors.New("username is required")
	ErrJobIdentifierRequired = errors.New("job must be identified by NAME ID arguments or --correlator")
	ErrJCLSourceRequired     = errors.New("one of --jcl-file, --dataset, or --uss-file is required")
	ErrMessageClassInvalid   = errors.New("message class must be a single character")
	ErrVariablePairFormat    = errors.New("variables must be given as NAME=VALUE")
	ErrSpoolFileIDInvalid    = errors.New("spool file id must be a number or 'JCL'")
)

// createClient builds a client from the effective configuration (flags,
// environment, config file).
func createClient() (zosmf.Client, error) {
	host := viper.GetString("host")
	if host == "" {
		return nil, ErrHostRequired
	}

	config := &zosmf.Config{
		BaseURL:         host,
		Username:        viper.GetString("username"),
		Password:        viper.GetString("password"),
		CertificatePath: viper.GetString("ca-cert"),
		SkipTLSVerify:   viper.GetBool("insecure"),
	}

	client, err := zosmfclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// renderStructured writes data as JSON or YAML when the output flag asks for
// it. It reports whether the data was written, so table rendering can be
// skipped.
func renderStructured(data interface{}) (bool, error) {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(data); err != nil {
			return true, fmt.Errorf("encoding to JSON: %w", err)
		}

		return true, nil
	case OutputFormatYAML:
		if err := yaml.NewEncoder(os.Stdout).Encode(data); err != nil {
			return true, fmt.Errorf("encoding to YAML: %w", err)
		}

		return true, nil
	default:
		return false, nil
	}
}

// readPassword prompts for a password without echoing it.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)

	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Println()

	return string(bytePassword), nil
}

// saveConfig persists the current viper settings to ~/.zosmf/config.yml.
func saveConfig() error {
	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to find home directory: %w", err)
		}

		cfgFile = filepath.Join(home, ".zosmf", "config.yml")
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// jobIdentifier resolves the NAME ID positional arguments or the --correlator
// flag into a job identifier.
func jobIdentifier(args []string, correlator string) (zosmf.JobIdentifier, error) {
	if correlator != "" {
		return zosmf.JobCorrelator(correlator), nil
	}

	if len(args) >= 2 {
		return zosmf.JobID(args[0], args[1]), nil
	}

	return zosmf.JobIdentifier{}, ErrJobIdentifierRequired
}
