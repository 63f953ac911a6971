package configuration

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

var ErrNoTerminal = errors.New("stdin is not a terminal")

// readPassword prompts on stderr and reads a password from stdin without echo.
var readPassword = func() (string, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return "", ErrNoTerminal
	}
	fmt.Fprint(os.Stderr, "Enter Password: ")
	passwdBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(passwdBytes), nil
}

type BasicAuth struct {
	Username       string `mapstructure:"username" yaml:"username"`
	Password       string `mapstructure:"password" yaml:"password"`
	PasswordFile   string `mapstructure:"passwordFile" yaml:"passwordFile"`
	PasswordPrompt bool   `mapstructure:"passwordPrompt" yaml:"passwordPrompt"`
}

func (c *BasicAuth) setFlags(fs *pflag.FlagSet) {
	fs.StringP("username", "u", "", `Username for basic authentication. Required.
See also: -P, --password ; -W --prompt-password ; --password-file`)
	fs.StringP("password", "P", "", `Password for basic authentication. Required unless
the -W, --prompt-password or --password-file flags are set.
See also: -u, --username ; -W --prompt-password ; --password-file`)
	fs.BoolP("prompt-password", "W", false, `Prompt for password for basic authentication.
See also: -u, --username ; -P --password ; --password-file`)
	fs.String("password-file", "", `File containing password for basic authentication.
Leading and trailing whitespace is removed.
See also: -u, --username ; -P --password ; -W --prompt-password`)
}

func (c *BasicAuth) bindings() []binding {
	return []binding{
		{"basicAuth.username", "username"},
		{"basicAuth.password", "password"},
		{"basicAuth.passwordPrompt", "prompt-password"},
		{"basicAuth.passwordFile", "password-file"},
	}
}

func (c *BasicAuth) hydrate() error {
	switch {
	case c.PasswordFile != "":
		passwdBytes, err := os.ReadFile(c.PasswordFile)
		if err != nil {
			return fmt.Errorf("unable to read password file: %w", err)
		}
		c.Password = strings.TrimSpace(string(passwdBytes))
	case c.PasswordPrompt:
		passwd, err := readPassword()
		if err != nil {
			return fmt.Errorf("unable to read password: %w", err)
		}
		c.Password = strings.TrimSpace(passwd)
	}

	return nil
}

// Redacted returns a copy of c that is safe to print.
func (c BasicAuth) Redacted() BasicAuth {
	if c.Password != "" {
		c.Password = "********"
	}
	return c
}
