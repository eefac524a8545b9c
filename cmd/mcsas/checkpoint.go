package main

import (
	"encoding/gob"
	"os"

	"mcsas/mcopt"
)

// saveContribs gob-encodes the completed runs' final ContributionSets, the
// Go analogue of the reference's "pickle/binary of contribs for resume".
// mat.Dense implements encoding.BinaryMarshaler/Unmarshaler, which gob uses
// automatically, so ContributionSet needs no custom codec.
func saveContribs(path string, runs []*mcopt.Run) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sets := make([]*mcopt.ContributionSet, len(runs))
	for idx, r := range runs {
		sets[idx] = r.Contribs
	}
	return gob.NewEncoder(f).Encode(sets)
}

// loadContribs decodes a checkpoint written by saveContribs, for the
// -resume flag's "round-trip of contribs for resume" path.
func loadContribs(path string) ([]*mcopt.ContributionSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sets []*mcopt.ContributionSet
	if err := gob.NewDecoder(f).Decode(&sets); err != nil {
		return nil, err
	}
	return sets, nil
}
