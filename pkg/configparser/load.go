package configparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var ErrNoFilePath = errors.New("no file path provided")

// LoadYamlFile reads a YAML file and exports its leaves as environment variables.
// Nested keys are joined with "_" and upper-cased: database.host -> DATABASE_HOST.
// Variables that are already set in the environment are left untouched.
func LoadYamlFile(filepath string) error {
	if filepath == "" {
		return ErrNoFilePath
	}

	file, err := os.Open(filepath)
	if err != nil {
		return fmt.Errorf("could not open YAML file: %w", err)
	}
	defer file.Close()

	vars, err := flattenYaml(file)
	if err != nil {
		return err
	}

	for key, value := range vars {
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("could not set env var %s: %w", key, err)
		}
	}

	return nil
}

// flattenYaml understands the subset of YAML used by config files:
// two-space indented maps, scalar values, comments and ${VAR:-default} substitution.
func flattenYaml(r io.Reader) (map[string]string, error) {
	vars := make(map[string]string)
	scanner := bufio.NewScanner(r)

	var prefix []string
	var indents []int

	for scanner.Scan() {
		line := scanner.Text()
		content := stripComment(strings.TrimSpace(line))
		if content == "" {
			continue
		}

		indent := len(line) - len(strings.TrimLeft(line, " "))
		for len(indents) > 0 && indent <= indents[len(indents)-1] {
			indents = indents[:len(indents)-1]
			prefix = prefix[:len(prefix)-1]
		}

		key, value, found := strings.Cut(content, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if value == "" {
			prefix = append(prefix, key)
			indents = append(indents, indent)
			continue
		}

		fullKey := strings.ToUpper(strings.Join(append(append([]string{}, prefix...), key), "_"))
		vars[fullKey] = substitute(unquote(value))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading YAML file: %w", err)
	}

	return vars, nil
}

func stripComment(s string) string {
	if strings.HasPrefix(s, "#") {
		return ""
	}
	if i := strings.Index(s, " #"); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

// substitute resolves ${VAR:-default}.
func substitute(v string) string {
	if !strings.HasPrefix(v, "${") || !strings.HasSuffix(v, "}") {
		return v
	}
	name, def, _ := strings.Cut(v[2:len(v)-1], ":-")
	if env := os.Getenv(strings.TrimSpace(name)); env != "" {
		return env
	}
	return strings.TrimSpace(def)
}
