// Package credential resolves the API key used to authorize remote calls.
package credential

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when no source yields a usable credential.
var ErrNotFound = errors.New("api key not found")

// Source names where a credential may be found, in precedence order.
type Source struct {
	// EnvVar is checked first.
	EnvVar string
	// File is a path relative to the user's home directory.
	File string
}

// Well-known sources per provider.
var (
	Anthropic = Source{EnvVar: "ANTHROPIC_API_KEY", File: ".claude_api_key"}
	OpenAI    = Source{EnvVar: "OPENAI_API_KEY", File: ".openai_api_key"}
)

// ForProvider returns the credential source for a provider name.
func ForProvider(provider string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "anthropic":
		return Anthropic, nil
	case "openai":
		return OpenAI, nil
	default:
		return Source{}, fmt.Errorf("unknown provider %q", provider)
	}
}

// Origin describes where a credential came from.
type Origin string

const (
	OriginEnv  Origin = "environment"
	OriginFile Origin = "file"
)

// Credential is an opaque API key. It never renders its value.
type Credential struct {
	key    string
	Origin Origin `json:"origin"`
	Path   string `json:"path,omitempty"`
}

// Key returns the raw secret for handing to a client constructor.
func (c Credential) Key() string { return c.key }

// String implements fmt.Stringer without exposing the key.
func (c Credential) String() string {
	if c.Origin == OriginFile {
		return fmt.Sprintf("credential(%s %s)", c.Origin, c.Path)
	}
	return fmt.Sprintf("credential(%s)", c.Origin)
}

// GoString keeps %#v from printing the key.
func (c Credential) GoString() string { return c.String() }

// Resolver looks up credentials. Zero-value fields fall back to the os package.
type Resolver struct {
	LookupEnv func(string) (string, bool)
	HomeDir   func() (string, error)
	ReadFile  func(string) ([]byte, error)
}

func (r Resolver) lookupEnv(name string) (string, bool) {
	if r.LookupEnv != nil {
		return r.LookupEnv(name)
	}
	return os.LookupEnv(name)
}

func (r Resolver) homeDir() (string, error) {
	if r.HomeDir != nil {
		return r.HomeDir()
	}
	return os.UserHomeDir()
}

func (r Resolver) readFile(path string) ([]byte, error) {
	if r.ReadFile != nil {
		return r.ReadFile(path)
	}
	return os.ReadFile(path)
}

// FilePath returns the absolute dotfile path for src.
func (r Resolver) FilePath(src Source) (string, error) {
	if src.File == "" {
		return "", errors.New("no credential file configured")
	}
	home, err := r.homeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, src.File), nil
}

// Resolve returns the credential from the environment variable, falling back
// to the first line of the dotfile. It performs no network validation.
func (r Resolver) Resolve(src Source) (Credential, error) {
	if src.EnvVar != "" {
		if v, ok := r.lookupEnv(src.EnvVar); ok {
			if key := strings.TrimSpace(v); key != "" {
				return Credential{key: key, Origin: OriginEnv}, nil
			}
		}
	}

	path, err := r.FilePath(src)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	data, err := r.readFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Credential{}, ErrNotFound
		}
		return Credential{}, fmt.Errorf("%w: read %s: %v", ErrNotFound, path, err)
	}
	if key := firstLine(data); key != "" {
		return Credential{key: key, Origin: OriginFile, Path: path}, nil
	}
	return Credential{}, fmt.Errorf("%w: %s is empty", ErrNotFound, path)
}

func firstLine(data []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line
		}
	}
	return ""
}

// Status reports which sources are present without reading secrets into the caller.
type Status struct {
	EnvSet     bool   `json:"env_set"`
	FileExists bool   `json:"file_exists"`
	FilePath   string `json:"file_path,omitempty"`
}

// Inspect reports which of src's locations hold something.
func (r Resolver) Inspect(src Source) Status {
	var st Status
	if v, ok := r.lookupEnv(src.EnvVar); ok && strings.TrimSpace(v) != "" {
		st.EnvSet = true
	}
	if path, err := r.FilePath(src); err == nil {
		st.FilePath = path
		if _, err := r.readFile(path); err == nil {
			st.FileExists = true
		}
	}
	return st
}

// Remediation returns operator guidance for configuring src.
func Remediation(src Source) []string {
	return []string{
		fmt.Sprintf("%s environment variable not set and no API key found.", src.EnvVar),
		fmt.Sprintf("Please set it with: export %s='your_api_key'", src.EnvVar),
		fmt.Sprintf("Or create a file at ~/%s containing your API key.", src.File),
	}
}
