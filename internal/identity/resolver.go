package identity

// Source labels how a global identity was derived.
type Source string

const (
	SourceAuthority Source = "authority" // external authoritative id (e.g. MusicBrainz recording)
	SourceContent   Source = "content"   // full-content cryptographic hash
	SourceMetadata  Source = "metadata"  // metadata fingerprint
)

// Identifiers carries every identity signal available for one track.
// All fields are optional; empty means absent.
type Identifiers struct {
	AuthorityID string // e.g. MusicBrainz recording id
	ISRC        string // normalized recording code, informational only
	Fingerprint string // from Fingerprint
	ContentHash string // hash over the full file content
	PartialHash string // hash over a file prefix, informational only
}

// GlobalIdentity is the resolved canonical id for a track across
// duplicate sources, tagged with its provenance.
type GlobalIdentity struct {
	Value  string
	Source Source
}

// Resolve picks the strongest available identity: authority id, then
// content hash, then metadata fingerprint. It returns ok=false when
// none is present; callers must treat such tracks as ungrouped rather
// than inventing an identity. Pure function of its inputs.
func Resolve(ids Identifiers) (GlobalIdentity, bool) {
	switch {
	case ids.AuthorityID != "":
		return GlobalIdentity{Value: ids.AuthorityID, Source: SourceAuthority}, true
	case ids.ContentHash != "":
		return GlobalIdentity{Value: ids.ContentHash, Source: SourceContent}, true
	case ids.Fingerprint != "":
		return GlobalIdentity{Value: ids.Fingerprint, Source: SourceMetadata}, true
	}
	return GlobalIdentity{}, false
}
