package player

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/jademud/jademud/internal/storage"
)

const maxPasswordTries = 3

type loginFlow struct {
	chars storage.Storer[*Character]
}

// Run walks a fresh connection through name and password, creating the
// character when the name is unknown. Passwords are never stored in the
// clear.
func (f *loginFlow) Run(br *bufio.Reader, w io.Writer) (*Character, error) {
	w.Write([]byte("Welcome, traveler.\n"))

	for {
		username, err := Prompt(br, w, "By what name do you wish to be known? ",
			WithValidator(func(str string) (bool, string) {
				if len(str) == 0 {
					return false, "Invalid name, please try another.\n"
				}
				for _, r := range str {
					if !unicode.IsLetter(r) {
						return false, "Invalid name, please try another.\n"
					}
				}
				return true, ""
			}),
		)
		if err != nil {
			return nil, err
		}

		char := f.chars.Get(strings.ToLower(username))

		if char == nil {
			char, err = f.newCharacter(br, w, username)
			if err != nil {
				return nil, err
			}
			if char == nil {
				continue
			}
			if err := f.chars.Save(strings.ToLower(username), char); err != nil {
				return nil, fmt.Errorf("saving new character: %w", err)
			}
		} else {
			_, err = Prompt(br, w, "Password: ", WithMaxTries(maxPasswordTries), WithValidator(
				func(str string) (bool, string) {
					if !char.CheckPassword(str) {
						return false, "Wrong password.\n"
					}
					return true, ""
				},
			))
			if err != nil {
				return nil, err
			}
		}

		return char, nil
	}
}

func (f *loginFlow) newCharacter(br *bufio.Reader, w io.Writer, username string) (*Character, error) {
	ok, err := PromptYN(br, w, fmt.Sprintf("Did I get that right, %s (Y/N)? ", username))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	for {
		passOne, err := Prompt(br, w, fmt.Sprintf("Give me a password for %s: ", username), WithValidator(
			func(str string) (bool, string) {
				if len(str) == 0 || strings.EqualFold(str, username) {
					return false, "Illegal Password.\n"
				}
				return true, ""
			},
		))
		if err != nil {
			return nil, err
		}

		passTwo, err := Prompt(br, w, "Please retype password: ")
		if err != nil {
			return nil, err
		}

		if passOne != passTwo {
			w.Write([]byte("Passwords don't match... start over.\n"))
			continue
		}

		char := &Character{Name: username}
		if err := char.SetPassword(passOne); err != nil {
			return nil, err
		}
		return char, nil
	}
}
