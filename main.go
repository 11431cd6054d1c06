package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/soniclab/curator/internal/catalog"
	"github.com/soniclab/curator/internal/config"
	"github.com/soniclab/curator/internal/generator"
	"github.com/soniclab/curator/internal/genre"
	"github.com/soniclab/curator/internal/logging"
	"github.com/soniclab/curator/internal/matching"
	"github.com/soniclab/curator/internal/playlist"
)

const usage = `usage: curator <command> [flags]

commands:
  generate        generate a playlist from a taste request
  replace         swap one track of a saved playlist for a fresh pick
  suggest-genres  suggest genres related to a selection
  dupes           list duplicate tracks across sources
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "generate":
		err = runGenerate(os.Args[2:])
	case "replace":
		err = runReplace(os.Args[2:])
	case "suggest-genres":
		err = runSuggestGenres(os.Args[2:])
	case "dupes":
		err = runDupes(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// library bundles everything a command needs from the catalog.
type library struct {
	store *catalog.Store
	snap  *catalog.Snapshot
	idx   *matching.Index
	log   zerolog.Logger
}

func openLibrary(dbPath string, verbose bool) (*library, error) {
	log := logging.New(os.Stderr, verbose)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dbPath == "" {
		dbPath = cfg.LibraryDB
	}

	store, err := catalog.Open(dbPath)
	if err != nil {
		return nil, err
	}

	snap, err := store.LoadSnapshot()
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	start := time.Now()
	idx := matching.Build(snap.Tracks(), cfg.Tunables())
	log.Debug().
		Str("tracks", humanize.Comma(int64(snap.Len()))).
		Int("genres", len(idx.Genres())).
		Dur("took", time.Since(start)).
		Msg("index built")

	return &library{store: store, snap: snap, idx: idx, log: log}, nil
}

func (l *library) Close() {
	l.store.Close() //nolint:errcheck // read-mostly handle, nothing to recover
}

// requestFlags are the taste-request flags shared by generate and
// replace.
type requestFlags struct {
	genres     *string
	moods      *string
	activities *string
	tempo      *string
	bpm        *float64
	surprise   *float64
	all        *bool
}

func addRequestFlags(fs *flag.FlagSet) *requestFlags {
	return &requestFlags{
		genres:     fs.String("genres", "", "comma-separated seed genres"),
		moods:      fs.String("moods", "", "comma-separated moods"),
		activities: fs.String("activities", "", "comma-separated activities"),
		tempo:      fs.String("tempo", "", "tempo bucket: slow, medium or fast"),
		bpm:        fs.Float64("bpm", 0, "target BPM (overrides -tempo)"),
		surprise:   fs.Float64("surprise", 0, "surprise level, 0 to 1"),
		all:        fs.Bool("all", false, "draw from the whole library, not just seed genres"),
	}
}

func (rf *requestFlags) request() (generator.Request, error) {
	req := generator.Request{
		Genres:     splitList(*rf.genres),
		Moods:      splitList(*rf.moods),
		Activities: splitList(*rf.activities),
		Surprise:   *rf.surprise,
		AllGenres:  *rf.all,
	}
	if *rf.bpm > 0 {
		req.Tempo = generator.TempoSpec{TargetBPM: *rf.bpm}
	} else if *rf.tempo != "" {
		bucket, err := parseTempoBucket(*rf.tempo)
		if err != nil {
			return generator.Request{}, err
		}
		req.Tempo = generator.TempoSpec{Bucket: bucket}
	}
	return req, nil
}

func loadStrategy(path string) (generator.Strategy, error) {
	if path == "" {
		return generator.DefaultStrategy(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return generator.Strategy{}, err
	}
	strat, err := generator.ParseStrategy(data)
	if err != nil {
		return generator.Strategy{}, fmt.Errorf("parse strategy %s: %w", path, err)
	}
	return strat, nil
}

func resolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

func savePlaylist(lib *library, name string, selections []generator.Selection) error {
	saved := make([]catalog.SavedSelection, 0, len(selections))
	for _, sel := range selections {
		saved = append(saved, catalog.SavedSelection{FileID: sel.Track.FileID, Score: sel.Score})
	}
	publicID, err := lib.store.SavePlaylist(name, saved)
	if err != nil {
		return fmt.Errorf("save playlist: %w", err)
	}
	lib.log.Info().Str("name", name).Str("id", publicID).Msg("playlist saved")
	return nil
}

// loadPlaylist rebuilds a saved playlist's selections from the current
// snapshot. Tracks that have left the library since the save are
// skipped.
func loadPlaylist(store *catalog.Store, snap *catalog.Snapshot, publicID string) (*playlist.Playlist, error) {
	ids, err := store.PlaylistTrackIDs(publicID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("playlist %s not found or empty", publicID)
	}
	sels := make([]generator.Selection, 0, len(ids))
	for _, id := range ids {
		tr, ok := snap.TrackByID(id)
		if !ok {
			continue
		}
		sels = append(sels, generator.Selection{Track: tr})
	}
	return playlist.New(publicID, sels), nil
}

// replaceTrack swaps the selection at position (1-based) for a freshly
// generated replacement. The whole playlist is the replacement context,
// so nothing already in it can come back and per-artist/per-album caps
// count the remaining tracks. Returns false when no eligible candidate
// exists; the playlist is then left untouched.
func replaceTrack(p *playlist.Playlist, req generator.Request, strat generator.Strategy,
	idx *matching.Index, snap *catalog.Snapshot, position int, seed int64,
) (generator.Selection, bool) {
	got := generator.Replace(req, strat, idx, snap, 1, p.Selections(), nil, seed)
	if len(got) == 0 {
		return generator.Selection{}, false
	}
	p.Replace(position-1, got[0])
	return got[0], true
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	dbPath := fs.String("db", "", "library database path (default from config)")
	rf := addRequestFlags(fs)
	length := fs.Int("length", 20, "number of tracks")
	seed := fs.Int64("seed", 0, "generation seed (0 = time-based)")
	strategyPath := fs.String("strategy", "", "path to a strategy JSON file")
	save := fs.String("save", "", "persist the playlist under this name")
	asJSON := fs.Bool("json", false, "emit selections as JSON")
	verbose := fs.Bool("v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req, err := rf.request()
	if err != nil {
		return err
	}
	req.Length = *length
	if len(req.Genres) == 0 && !req.AllGenres {
		return fmt.Errorf("no seed genres; pass -genres or -all")
	}

	strat, err := loadStrategy(*strategyPath)
	if err != nil {
		return err
	}

	lib, err := openLibrary(*dbPath, *verbose)
	if err != nil {
		return err
	}
	defer lib.Close()

	genSeed := resolveSeed(*seed)
	selections := generator.Select(req, strat, lib.idx, lib.snap, genSeed)
	lib.log.Info().
		Int("requested", req.Length).
		Int("selected", len(selections)).
		Int64("seed", genSeed).
		Msg("playlist generated")
	if len(selections) < req.Length {
		lib.log.Warn().Msg("candidate pool exhausted before reaching the requested length")
	}

	if *asJSON {
		if err := json.NewEncoder(os.Stdout).Encode(selections); err != nil {
			return err
		}
	} else {
		printSelections(playlist.New(*save, selections))
	}

	if *save != "" {
		return savePlaylist(lib, *save, selections)
	}
	return nil
}

func runReplace(args []string) error {
	fs := flag.NewFlagSet("replace", flag.ExitOnError)
	dbPath := fs.String("db", "", "library database path (default from config)")
	id := fs.String("id", "", "public id of the saved playlist")
	position := fs.Int("position", 0, "1-based position of the track to swap out")
	rf := addRequestFlags(fs)
	seed := fs.Int64("seed", 0, "generation seed (0 = time-based)")
	strategyPath := fs.String("strategy", "", "path to a strategy JSON file")
	save := fs.String("save", "", "persist the updated playlist under this name")
	asJSON := fs.Bool("json", false, "emit the updated selections as JSON")
	verbose := fs.Bool("v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("no playlist id; pass -id")
	}

	req, err := rf.request()
	if err != nil {
		return err
	}
	strat, err := loadStrategy(*strategyPath)
	if err != nil {
		return err
	}

	lib, err := openLibrary(*dbPath, *verbose)
	if err != nil {
		return err
	}
	defer lib.Close()

	p, err := loadPlaylist(lib.store, lib.snap, *id)
	if err != nil {
		return err
	}
	if *position < 1 || *position > p.Len() {
		return fmt.Errorf("position %d out of range 1..%d", *position, p.Len())
	}

	genSeed := resolveSeed(*seed)
	old, _ := p.At(*position - 1)
	sel, ok := replaceTrack(p, req, strat, lib.idx, lib.snap, *position, genSeed)
	if !ok {
		lib.log.Warn().Msg("no eligible replacement found; playlist unchanged")
		return nil
	}
	lib.log.Info().
		Str("out", old.Track.Title).
		Str("in", sel.Track.Title).
		Int64("seed", genSeed).
		Msg("track replaced")

	if *asJSON {
		if err := json.NewEncoder(os.Stdout).Encode(p.Selections()); err != nil {
			return err
		}
	} else {
		printSelections(p)
	}

	if *save != "" {
		return savePlaylist(lib, *save, p.Selections())
	}
	return nil
}

func runSuggestGenres(args []string) error {
	fs := flag.NewFlagSet("suggest-genres", flag.ExitOnError)
	dbPath := fs.String("db", "", "library database path (default from config)")
	genres := fs.String("genres", "", "comma-separated selected genres")
	limit := fs.Int("limit", 5, "maximum number of suggestions")
	asJSON := fs.Bool("json", false, "emit suggestions as JSON")
	verbose := fs.Bool("v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	selected := splitList(*genres)
	if len(selected) == 0 {
		return fmt.Errorf("no selected genres; pass -genres")
	}

	lib, err := openLibrary(*dbPath, *verbose)
	if err != nil {
		return err
	}
	defer lib.Close()

	// The snapshot's genre list is sorted, so the display casing of a
	// suggestion is stable across runs.
	suggestions := genre.Suggest(selected, lib.snap.Genres(), lib.idx.Cooccurrence(), *limit)

	if *asJSON {
		return json.NewEncoder(os.Stdout).Encode(suggestions)
	}
	if len(suggestions) == 0 {
		fmt.Println("no related genres found")
		return nil
	}
	for _, g := range suggestions {
		fmt.Println(g)
	}
	return nil
}

func runDupes(args []string) error {
	fs := flag.NewFlagSet("dupes", flag.ExitOnError)
	dbPath := fs.String("db", "", "library database path (default from config)")
	asJSON := fs.Bool("json", false, "emit duplicate groups as JSON")
	verbose := fs.Bool("v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	lib, err := openLibrary(*dbPath, *verbose)
	if err != nil {
		return err
	}
	defer lib.Close()

	groups := catalog.Duplicates(lib.snap)

	if *asJSON {
		return json.NewEncoder(os.Stdout).Encode(groups)
	}
	if len(groups) == 0 {
		fmt.Println("no duplicates found")
		return nil
	}
	for _, g := range groups {
		fmt.Printf("%s (%s, %s tracks)\n", g.Identity.Value, g.Identity.Source,
			humanize.Comma(int64(len(g.Tracks))))
		for _, t := range g.Tracks {
			fmt.Printf("  #%d  %s - %s [%s]  %s\n",
				t.FileID, t.Artist, t.Title, t.Album, formatDuration(t.DurationSec))
		}
	}
	return nil
}

func printSelections(p *playlist.Playlist) {
	for i, sel := range p.Selections() {
		t := sel.Track
		fmt.Printf("%2d. %s - %s [%s]  %s  (%.2f)\n",
			i+1, t.Artist, t.Title, t.Album, formatDuration(t.DurationSec), sel.Score)
		for _, reason := range sel.Reasons {
			fmt.Printf("      %s\n", reason)
		}
	}
	fmt.Printf("\n%d tracks, %s total\n", p.Len(), p.TotalDuration().Round(time.Second))
}

func formatDuration(sec float64) string {
	d := time.Duration(sec * float64(time.Second)).Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func parseTempoBucket(s string) (matching.TempoBucket, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "slow":
		return matching.TempoSlow, nil
	case "medium":
		return matching.TempoMedium, nil
	case "fast":
		return matching.TempoFast, nil
	default:
		return "", fmt.Errorf("unknown tempo bucket %q (want slow, medium or fast)", s)
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
