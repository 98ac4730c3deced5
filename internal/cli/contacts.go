package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/contactdex/internal/domain/contact/tag"
	contactuc "github.com/kailas-cloud/contactdex/internal/usecase/contact"
)

// contactsFile is the YAML layout accepted by --file.
type contactsFile struct {
	Contacts []contactRow `yaml:"contacts"`
}

type contactRow struct {
	Name        string   `yaml:"name"`
	Phone       string   `yaml:"phone"`
	Email       string   `yaml:"email"`
	Address     string   `yaml:"address"`
	Educations  []string `yaml:"educations"`
	Internships []string `yaml:"internships"`
	Modules     []string `yaml:"modules"`
	CCAs        []string `yaml:"ccas"`
}

func (r *contactRow) input() contactuc.Input {
	return contactuc.Input{
		Name:    r.Name,
		Phone:   r.Phone,
		Email:   r.Email,
		Address: r.Address,
		Tags: map[tag.Category][]string{
			tag.Education:  r.Educations,
			tag.Internship: r.Internships,
			tag.Module:     r.Modules,
			tag.CCA:        r.CCAs,
		},
	}
}

// loadContactsFile adds every contact of the YAML file at path, in file order.
// The file is loaded all or nothing.
func loadContactsFile(ctx context.Context, svc *contactuc.Service, path string) (int, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return 0, fmt.Errorf("read contacts: %w", err)
	}

	var f contactsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return 0, fmt.Errorf("parse contacts %s: %w", path, err)
	}

	ins := make([]contactuc.Input, len(f.Contacts))
	for i := range f.Contacts {
		ins[i] = f.Contacts[i].input()
	}
	saved, err := svc.AddAll(ctx, ins)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", path, err)
	}
	return len(saved), nil
}
