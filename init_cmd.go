package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fvtools/fvmirror/internal/config"
	"github.com/fvtools/fvmirror/internal/credfile"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .env file with Filevine API credentials",
		Long: "Init prompts for a Filevine personal access token and client credentials\n" +
			"and writes them to a .env file with owner-only permissions. fvmirror\n" +
			"loads the file automatically from the working directory.",
		Args: cobra.NoArgs,
		RunE: runInit,
	}

	cmd.Flags().String("path", ".env", "where to write the credentials file")
	cmd.Flags().Bool("force", false, "overwrite an existing file without asking")

	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("path")
	force, _ := cmd.Flags().GetBool("force")

	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return errors.New("init needs an interactive terminal to prompt for credentials")
	}

	stdin := bufio.NewReader(os.Stdin)

	fmt.Printf("Credentials will be written to %s\n", path)

	if !force {
		if _, err := os.Stat(path); err == nil {
			ok, err := confirmOverwrite(stdin, path)
			if err != nil {
				return err
			}

			if !ok {
				fmt.Println("Aborted. Existing .env left unchanged.")
				return nil
			}
		}
	}

	pat, err := promptSecret("Personal access token")
	if err != nil {
		return fmt.Errorf("personal access token: %w", err)
	}

	clientID, err := promptLine(stdin, "Client id")
	if err != nil {
		return fmt.Errorf("client id: %w", err)
	}

	clientSecret, err := promptSecret("Client secret")
	if err != nil {
		return fmt.Errorf("client secret: %w", err)
	}

	vars := map[string]string{
		config.EnvPAT:          pat,
		config.EnvClientID:     clientID,
		config.EnvClientSecret: clientSecret,
	}

	if err := credfile.Write(path, vars); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", path)
	fmt.Println("fvmirror will load it automatically from the working directory.")

	return nil
}

func confirmOverwrite(stdin *bufio.Reader, path string) (bool, error) {
	fmt.Printf("A .env file already exists at %s. Overwrite it? [y/N] ", path)

	line, err := stdin.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("reading response: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))

	return answer == "y" || answer == "yes", nil
}

func promptLine(stdin *bufio.Reader, label string) (string, error) {
	fmt.Printf("%s: ", label)

	line, err := stdin.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}

	value := strings.TrimSpace(line)
	if value == "" {
		return "", errors.New("value must not be empty")
	}

	return value, nil
}

func promptSecret(label string) (string, error) {
	fmt.Printf("%s: ", label)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))

	// ReadPassword suppresses the echo, including the user's newline.
	fmt.Println()

	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}

	value := strings.TrimSpace(string(raw))
	if value == "" {
		return "", errors.New("value must not be empty")
	}

	return value, nil
}
