package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/elmtooling/elm-json-go/internal/clierr"
	"github.com/elmtooling/elm-json-go/internal/manifest"
	"github.com/elmtooling/elm-json-go/internal/pkgname"
)

type newCommand struct{}

func (c *newCommand) Name() string     { return "new" }
func (c *newCommand) Args() string     { return "" }
func (c *newCommand) ShortHelp() string { return "Create a new elm.json file" }
func (c *newCommand) LongHelp() string {
	return "Walks you through creating a fresh elm.json, either an application or a\n" +
		"package manifest, in the current directory."
}

func (c *newCommand) Register(fs *flag.FlagSet) {}

func (c *newCommand) Run(ctx *runContext, args []string) error {
	scanner := bufio.NewScanner(os.Stdin)

	kind, err := promptChoice(scanner, "What type of elm.json file do you want to create?", []string{"application", "package"})
	if err != nil {
		return err
	}

	var m interface{}
	switch kind {
	case "application":
		m = manifest.NewApplication()
	case "package":
		pkg, err := wizardPackage(scanner)
		if err != nil {
			return err
		}
		m = pkg
	}

	return createElmJSON(m)
}

func wizardPackage(scanner *bufio.Scanner) (*manifest.Package, error) {
	name, err := untilValid(scanner, "Enter a name for your package: (format: author/project)", func(s string) (pkgname.Name, error) {
		return pkgname.Parse(s)
	})
	if err != nil {
		return nil, err
	}

	summary, err := untilValid(scanner, "Enter a summary for your package (max 80 characters)", validateSummary)
	if err != nil {
		return nil, err
	}

	licenseOptions := []string{"BSD-3-Clause", "MIT", "other..."}
	choice, err := promptChoice(scanner, "Choose a license for your package", licenseOptions)
	if err != nil {
		return nil, err
	}

	license := choice
	if choice == "other..." {
		license, err = untilValid(scanner, "License in SPDX format", func(s string) (string, error) {
			if manifest.IsApprovedLicense(s) {
				return s, nil
			}
			return "", fmt.Errorf("please pick a valid license")
		})
		if err != nil {
			return nil, err
		}
	}

	pkg := manifest.NewPackage()
	pkg.Name = name
	pkg.Summary = summary
	pkg.License = license
	return pkg, nil
}

func validateSummary(s string) (string, error) {
	if len(s) > 80 {
		return "", fmt.Errorf("summary may not be over 80 characters long")
	}
	return s, nil
}

// promptChoice numbers options 1..N and loops until the user picks a
// valid one.
func promptChoice(scanner *bufio.Scanner, prompt string, options []string) (string, error) {
	fmt.Println(prompt)
	for i, o := range options {
		fmt.Printf("  %d) %s\n", i+1, o)
	}
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return "", scanner.Err()
		}
		idx, err := parseChoiceIndex(strings.TrimSpace(scanner.Text()), len(options))
		if err != nil {
			fmt.Printf("Error: %s\n", err)
			continue
		}
		return options[idx], nil
	}
}

func parseChoiceIndex(s string, n int) (int, error) {
	var idx int
	if _, err := fmt.Sscanf(s, "%d", &idx); err != nil {
		return 0, fmt.Errorf("please enter a number between 1 and %d", n)
	}
	if idx < 1 || idx > n {
		return 0, fmt.Errorf("please enter a number between 1 and %d", n)
	}
	return idx - 1, nil
}

// untilValid re-prompts until validate succeeds.
func untilValid[T any](scanner *bufio.Scanner, prompt string, validate func(string) (T, error)) (T, error) {
	var zero T
	for {
		fmt.Printf("%s: ", prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return zero, err
			}
			return zero, fmt.Errorf("unexpected end of input")
		}
		v, err := validate(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Printf("Error: %s\n", err)
			continue
		}
		return v, nil
	}
}

func createElmJSON(m interface{}) error {
	if _, err := os.Stat(defaultManifestPath); err == nil {
		return clierr.New(clierr.UnwritableManifest, "an elm.json already exists in the current directory")
	}

	f, err := os.OpenFile(defaultManifestPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return clierr.Wrap(clierr.UnwritableManifest, err, "could not create elm.json")
	}
	defer f.Close()

	if err := manifest.Write(f, m); err != nil {
		return clierr.Wrap(clierr.UnwritableManifest, err, "could not write elm.json")
	}
	fmt.Println("Saved new elm.json!")
	return nil
}
