package catalog

import (
	"cmp"
	"slices"

	"github.com/soniclab/curator/internal/identity"
)

// DuplicateGroup is a set of tracks resolving to the same global
// identity across sources.
type DuplicateGroup struct {
	Identity identity.GlobalIdentity
	Tracks   []Track
}

// ResolveIdentity resolves a track's global identity, computing the
// metadata fingerprint when no stronger identifier is available.
func ResolveIdentity(t Track) (identity.GlobalIdentity, bool) {
	fp, _ := identity.Fingerprint(t.Title, t.Artist, t.Album, t.DurationSec)
	return identity.Resolve(identity.Identifiers{
		AuthorityID: t.MusicBrainzID,
		ISRC:        t.ISRC,
		Fingerprint: fp,
		ContentHash: t.ContentHash,
		PartialHash: t.PartialHash,
	})
}

// Duplicates groups the snapshot by resolved identity and returns the
// groups with more than one member, ordered by identity value for
// stable output. Unresolvable tracks are skipped, never grouped.
func Duplicates(s *Snapshot) []DuplicateGroup {
	byID := make(map[identity.GlobalIdentity][]Track)
	for _, t := range s.Tracks() {
		id, ok := ResolveIdentity(t)
		if !ok {
			continue
		}
		byID[id] = append(byID[id], t)
	}

	var groups []DuplicateGroup
	for id, tracks := range byID {
		if len(tracks) < 2 {
			continue
		}
		slices.SortFunc(tracks, func(a, b Track) int {
			return cmp.Compare(a.FileID, b.FileID)
		})
		groups = append(groups, DuplicateGroup{Identity: id, Tracks: tracks})
	}
	slices.SortFunc(groups, func(a, b DuplicateGroup) int {
		return cmp.Compare(a.Identity.Value, b.Identity.Value)
	})
	return groups
}
