package services

import (
	"dental_care_app_go/content"
	"dental_care_app_go/models"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadClinicProfile reads the clinic content from path, or from the
// embedded default profile when path is empty.
func LoadClinicProfile(path string) (*models.ClinicProfile, error) {
	data := content.ClinicYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read clinic profile %s: %w", path, err)
		}
		data = b
		log.Printf("[INFO] Loaded clinic profile from %s", path)
	}

	return ParseClinicProfile(data)
}

// ParseClinicProfile decodes and checks a YAML clinic profile
func ParseClinicProfile(data []byte) (*models.ClinicProfile, error) {
	var profile models.ClinicProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse clinic profile: %w", err)
	}

	if strings.TrimSpace(profile.Name) == "" {
		return nil, errors.New("clinic profile: name is required")
	}
	if profile.Contact.PhoneHref == "" {
		return nil, errors.New("clinic profile: contact.phone_href is required")
	}
	for i, t := range profile.Testimonials {
		if t.Rating < 0 || t.Rating > 5 {
			return nil, fmt.Errorf("clinic profile: testimonial %d rating must be 0-5", i)
		}
	}

	return &profile, nil
}

// Initials returns up to two uppercase initials for a display name
func Initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		for _, r := range part {
			b.WriteString(strings.ToUpper(string(r)))
			break
		}
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}
