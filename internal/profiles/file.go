package profiles

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// UsersFile represents the structure of a users YAML file
type UsersFile struct {
	Users []UserConfig `yaml:"users"`
}

// UserConfig is one full user and its managed profiles.
type UserConfig struct {
	ID       int             `yaml:"id"`
	Profiles []ProfileConfig `yaml:"profiles"`
}

// ProfileConfig is one managed profile.
type ProfileConfig struct {
	ID      int  `yaml:"id"`
	Running bool `yaml:"running"`
}

// LoadUsersFile loads a Directory from a YAML file.
func LoadUsersFile(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading users file: %w", err)
	}
	return ParseUsers(data)
}

// ParseUsers parses users YAML into a Directory.
func ParseUsers(data []byte) (*Directory, error) {
	var file UsersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing users file: %w", err)
	}

	d := NewDirectory()
	for _, u := range file.Users {
		if err := d.AddUser(u.ID); err != nil {
			return nil, err
		}
	}
	for _, u := range file.Users {
		for _, p := range u.Profiles {
			if err := d.AddManagedProfile(u.ID, p.ID, p.Running); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}
