package player

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type promptValidator func(string) (bool, string)

type promptConfig struct {
	tries     int
	validator promptValidator
}

type promptOption func(*promptConfig)

func WithValidator(v promptValidator) promptOption {
	return func(cfg *promptConfig) {
		cfg.validator = v
	}
}

func WithMaxTries(i int) promptOption {
	return func(cfg *promptConfig) {
		cfg.tries = i
	}
}

// Prompt writes a prompt and reads one line, re-asking while the validator
// rejects the input. The caller owns the reader: one bufio.Reader per
// connection, shared across prompts, so buffered input is never lost
// between questions.
func Prompt(br *bufio.Reader, w io.Writer, prompt string, opts ...promptOption) (string, error) {
	config := &promptConfig{}
	for _, opt := range opts {
		opt(config)
	}

	tries := 0
	for {
		if _, err := w.Write([]byte(prompt)); err != nil {
			return "", err
		}

		input, err := br.ReadString('\n')
		if err != nil {
			return "", err
		}
		input = strings.TrimRight(input, "\r\n")

		if config.validator != nil {
			ok, msg := config.validator(input)
			if !ok {
				if msg != "" {
					w.Write([]byte(msg))
				}

				tries++
				if config.tries > 0 && config.tries == tries {
					w.Write([]byte("too many tries\n"))
					return "", fmt.Errorf("too many tries")
				}

				continue
			}
		}

		return input, nil
	}
}

func PromptYN(br *bufio.Reader, w io.Writer, prompt string) (bool, error) {
	str, err := Prompt(br, w, prompt, WithValidator(
		func(str string) (bool, string) {
			switch strings.ToLower(str) {
			case "y", "yes", "n", "no":
				return true, ""
			default:
				return false, "enter 'yes' or 'no'\n"
			}
		},
	))
	if err != nil {
		return false, err
	}

	switch strings.ToLower(str) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
