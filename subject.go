package ndsprite

import "path/filepath"

// DefaultSpecies is the list of subjects processed when none are given.
var DefaultSpecies = []string{
	"lucario",
	"gengar",
	"gardevoir",
	"alakazam",
	"gyarados",
	"scizor",
}

// Subject is one unit of work: a front and back image and the directory the
// outputs are written to.
type Subject struct {
	Name  string
	Front string
	Back  string
	Dir   string
}

// Layout maps species names to source images and project output
// directories.
type Layout struct {
	// Source holds front/mega_<species>.png and back/mega_<species>.png
	Source string
	// Project is the root of the decompilation project
	Project string
}

// Subject returns the Subject for species.
func (l Layout) Subject(species string) Subject {
	file := "mega_" + species + ".png"
	return Subject{
		Name:  species,
		Front: filepath.Join(l.Source, "front", file),
		Back:  filepath.Join(l.Source, "back", file),
		Dir:   filepath.Join(l.Project, "res", "pokemon", species, "forms", "mega"),
	}
}

// Subjects returns the Subject for each of species.
func (l Layout) Subjects(species ...string) []Subject {
	subjects := make([]Subject, 0, len(species))
	for _, s := range species {
		subjects = append(subjects, l.Subject(s))
	}
	return subjects
}
