package sqlexec

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Config carries everything needed to run one script: how to reach the
// database and how statements are terminated in the script file.
type Config struct {
	// Driver selects the connection opener registered under that name
	// (DbMySQL, DbPostgres, DbSqlite, DbLibSQL or a custom one).
	Driver string
	// Conn is the connection string or address understood by the driver.
	Conn string
	// User and Password are the database credentials. They may be empty for
	// drivers that do not use them, such as sqlite.
	User     string
	Password string
	// Separator marks the end of a statement in the script. Only its first
	// character is significant.
	Separator string
}

var configKeys = []string{"driver", "conn", "user", "password", "separator"}

// LoadConfig reads a flat key=value properties file with the required keys
// driver, conn, user, password and separator. Blank lines and lines starting
// with '#' or '!' are skipped. A missing key or an empty separator is
// rejected here, before any connection attempt.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
	}
	defer f.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("malformed line %q in config file %s", line, path)
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	for _, key := range configKeys {
		if _, ok := values[key]; !ok {
			return nil, fmt.Errorf("missing required config key %q in %s", key, path)
		}
	}

	cfg := &Config{
		Driver:    values["driver"],
		Conn:      values["conn"],
		User:      values["user"],
		Password:  values["password"],
		Separator: values["separator"],
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first unusable field. User and Password are allowed
// to be empty.
func (c *Config) Validate() error {
	if c.Driver == "" {
		return fmt.Errorf("config key %q must not be empty", "driver")
	}
	if c.Conn == "" {
		return fmt.Errorf("config key %q must not be empty", "conn")
	}
	if c.Separator == "" {
		return fmt.Errorf("config key %q must not be empty", "separator")
	}
	return nil
}

// SeparatorByte returns the statement separator character. Config must have
// been validated first.
func (c *Config) SeparatorByte() byte {
	return c.Separator[0]
}
