package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/campus-lab/coursepath/pkg/cli/config"
	"github.com/m-mizutani/gt"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func TestLoadAppConfiguration(t *testing.T) {
	path := writeConfig(t, `
[[university]]
id = "ucsd"
name = "UC San Diego"

[[university.major]]
id = "cs"
name = "Computer Science"

[[university.major]]
id = "cogsci"
name = "Cognitive Science"

[[university]]
id = "ucla"
name = "UCLA"

[[university.major]]
id = "math"
name = "Mathematics"
`)

	cfg, err := config.LoadAppConfiguration(path)
	gt.NoError(t, err).Required()
	gt.Array(t, cfg.Universities).Length(2)
	gt.Value(t, cfg.Universities[0].ID).Equal("ucsd")
	gt.Array(t, cfg.Universities[0].Majors).Length(2)

	registry := cfg.Registry()
	university, err := registry.Get("ucsd")
	gt.NoError(t, err).Required()
	gt.Value(t, university.Name).Equal("UC San Diego")

	name, ok := university.MajorName("cogsci")
	gt.Bool(t, ok).True()
	gt.Value(t, name).Equal("Cognitive Science")

	gt.Array(t, registry.List()).Length(2)
}

func TestLoadAppConfigurationErrors(t *testing.T) {
	cases := map[string]string{
		"empty file": ``,
		"missing university name": `
[[university]]
id = "ucsd"

[[university.major]]
id = "cs"
name = "Computer Science"
`,
		"no majors": `
[[university]]
id = "ucsd"
name = "UC San Diego"
`,
		"duplicate university": `
[[university]]
id = "ucsd"
name = "UC San Diego"

[[university.major]]
id = "cs"
name = "Computer Science"

[[university]]
id = "ucsd"
name = "UC San Diego again"

[[university.major]]
id = "cs"
name = "Computer Science"
`,
		"duplicate major": `
[[university]]
id = "ucsd"
name = "UC San Diego"

[[university.major]]
id = "cs"
name = "Computer Science"

[[university.major]]
id = "cs"
name = "Computer Science again"
`,
		"major without name": `
[[university]]
id = "ucsd"
name = "UC San Diego"

[[university.major]]
id = "cs"
`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, content)
			_, err := config.LoadAppConfiguration(path)
			gt.Error(t, err)
		})
	}
}

func TestLoadAppConfigurationMissingFile(t *testing.T) {
	_, err := config.LoadAppConfiguration(filepath.Join(t.TempDir(), "absent.toml"))
	gt.Error(t, err)
}
