package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	burntbeats "github.com/Ocean82/BurntBeats"
	"github.com/Ocean82/BurntBeats/internal/audio"
	"github.com/Ocean82/BurntBeats/internal/server"
	"github.com/Ocean82/BurntBeats/internal/theory"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "burntbeats",
	Short: "Generate songs from lyrics with procedural composition",
	Long: `BurntBeats turns lyrics and a few musical parameters into a finished
song: lyric prosody drives procedural melody, harmony and rhythm
generators, and an additive synthesizer renders the result to WAV.

Pipeline: lyrics → prosody analysis → composition → synthesis → WAV`,
	Version: version,
}

var (
	flagLyrics   string
	flagLyricsAt string
	flagGenre    string
	flagTempo    int
	flagKey      string
	flagDuration int
	flagSeed     int64
	flagOutput   string
	flagTitle    string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a song and write it to a WAV file",
	Long: `Generate a song from lyrics and write the WAV plus a metadata JSON
sidecar.

Examples:
  burntbeats generate --lyrics "I love the way you smile" -o smile.wav
  burntbeats generate --lyrics-file verse.txt --genre jazz --tempo 90 --key Am
  burntbeats generate --genre electronic --duration 60 --seed 42`,
	RunE: runGenerate,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Generate a song and play it through the speakers",
	RunE:  runPlay,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP generation API",
	Long: `Start the JSON API: POST /generate, GET /download/{id}.wav,
GET /genres, GET /health.

Example:
  burntbeats serve --port 8080`,
	RunE: runServe,
}

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List supported genres",
	Run: func(cmd *cobra.Command, args []string) {
		for _, g := range theory.Genres() {
			fmt.Println(g)
		}
	},
}

var flagPort int

func init() {
	for _, cmd := range []*cobra.Command{generateCmd, playCmd} {
		cmd.Flags().StringVar(&flagLyrics, "lyrics", "", "lyric text, newline separated lines")
		cmd.Flags().StringVar(&flagLyricsAt, "lyrics-file", "", "read lyrics from a file")
		cmd.Flags().StringVar(&flagGenre, "genre", "pop", "musical genre")
		cmd.Flags().IntVar(&flagTempo, "tempo", 120, "tempo in BPM (40-300)")
		cmd.Flags().StringVar(&flagKey, "key", "C", "musical key, e.g. C, F#, Am")
		cmd.Flags().IntVar(&flagDuration, "duration", 30, "song length in seconds")
		cmd.Flags().Int64Var(&flagSeed, "seed", 0, "random seed (0 picks one)")
		cmd.Flags().StringVar(&flagTitle, "title", "", "song title")
	}
	generateCmd.Flags().StringVarP(&flagOutput, "output", "o", "song.wav", "output WAV path")

	serveCmd.Flags().IntVar(&flagPort, "port", 8080, "listen port")

	rootCmd.AddCommand(generateCmd, playCmd, serveCmd, genresCmd)
}

func buildRequest() (burntbeats.Request, error) {
	lyrics := flagLyrics
	if flagLyricsAt != "" {
		data, err := os.ReadFile(flagLyricsAt)
		if err != nil {
			return burntbeats.Request{}, fmt.Errorf("read lyrics: %w", err)
		}
		lyrics = string(data)
	}
	req := burntbeats.Request{
		Title:       flagTitle,
		Lyrics:      lyrics,
		Genre:       flagGenre,
		TempoBPM:    flagTempo,
		Key:         flagKey,
		DurationSec: flagDuration,
	}
	if flagSeed != 0 {
		req.Seed = &flagSeed
	}
	return req, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	req, err := buildRequest()
	if err != nil {
		return err
	}

	result, err := burntbeats.Generate(req)
	if err != nil {
		return err
	}
	if err := os.WriteFile(flagOutput, result.WAV, 0o644); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}

	metaPath := strings.TrimSuffix(flagOutput, ".wav") + "_metadata.json"
	meta, err := json.MarshalIndent(result.Metadata, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(metaPath, meta, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}

	fmt.Printf("wrote %s (%d bytes, %d measures, seed %d)\n",
		flagOutput, len(result.WAV), result.Metadata.MeasureCount, result.Metadata.Seed)
	fmt.Printf("wrote %s\n", metaPath)
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	req, err := buildRequest()
	if err != nil {
		return err
	}

	buf, meta, err := burntbeats.RenderBuffer(req)
	if err != nil {
		return err
	}

	player, err := audio.NewPlayer(burntbeats.SampleRate, buf.L, buf.R)
	if err != nil {
		return err
	}
	defer player.Stop()

	fmt.Printf("playing %s (%s, %d BPM, seed %d)\n",
		meta.Title, meta.Genre, meta.TempoBPM, meta.Seed)
	player.Play()
	for player.IsPlaying() {
		time.Sleep(100 * time.Millisecond)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	return server.New(server.Config{Port: flagPort}).Run()
}
