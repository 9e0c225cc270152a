package main

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/showdown/internal/config"
	"github.com/lox/showdown/internal/equity"
	"github.com/lox/showdown/internal/phh"
	"github.com/lox/showdown/internal/randutil"
	"github.com/lox/showdown/internal/round"
	"github.com/lox/showdown/poker"
)

//go:embed schemas
var schemaFiles embed.FS

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func testGlobals(t *testing.T) (*Globals, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return &Globals{
		Config:   filepath.Join(t.TempDir(), "missing.hcl"),
		LogLevel: "error",
		NoColor:  true,
		out:      &buf,
	}, &buf
}

func TestParseHands(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected int
		hasError bool
	}{
		{"Single hand", []string{"AcKh"}, 1, false},
		{"Multiple hands", []string{"AcKh", "KdQs"}, 2, false},
		{"Hand with spaces", []string{"Ac Kh"}, 1, false},
		{"Invalid hand - too many cards", []string{"AcKhQd"}, 0, true},
		{"Invalid hand - too few cards", []string{"Ac"}, 0, true},
		{"Invalid card format", []string{"AcXy"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hands, err := parseHands(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, hands, tt.expected)
		})
	}
}

func TestEvaluate(t *testing.T) {
	board, holes, err := parseBoardAndHands("Ah Kh Qh 2c 3d", []string{"JhTh", "AsAd", "2h2d"})
	require.NoError(t, err)

	out, err := evaluate(poker.NewEvaluator(nil), board, holes)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, out.Winners)
	assert.Equal(t, poker.RoyalFlush, out.Rankings[0].Category)
	assert.Equal(t, poker.ThreeOfAKind, out.Rankings[1].Category)
	assert.Equal(t, poker.ThreeOfAKind, out.Rankings[2].Category)
	assert.True(t, out.Rankings[1].Beats(out.Rankings[2]))

	var buf bytes.Buffer
	writeEvalText(&buf, out, false)
	text := buf.String()
	assert.Contains(t, text, "Royal Flush")
	assert.Contains(t, text, "Three of a Kind, Aces")
	assert.Contains(t, text, "wins")
	assert.NotContains(t, text, "split")
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	_, _, err := parseBoardAndHands("AhKhQh2c", nil)
	assert.ErrorContains(t, err, "at least one hand")

	board, holes, err := parseBoardAndHands("AhKhQh2c", []string{"AsAd"})
	require.NoError(t, err)
	_, err = evaluate(poker.NewEvaluator(nil), board, holes)
	assert.True(t, poker.IsValidation(err, poker.WrongCommunitySize), err)

	board, holes, err = parseBoardAndHands("AhKhQh2c3d", []string{"AsAd", "Ah7c"})
	require.NoError(t, err)
	_, err = evaluate(poker.NewEvaluator(nil), board, holes)
	assert.True(t, poker.IsValidation(err, poker.DuplicateCard), err)
}

func compileEvalSchema(t *testing.T) *jsonschema.Schema {
	t.Helper()
	data, err := schemaFiles.ReadFile("schemas/eval.json")
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	const url = "https://showdown.local/schemas/eval.json"
	require.NoError(t, compiler.AddResource(url, bytes.NewReader(data)))
	schema, err := compiler.Compile(url)
	require.NoError(t, err)
	return schema
}

func TestEvalJSONMatchesSchema(t *testing.T) {
	schema := compileEvalSchema(t)

	cases := []struct {
		board string
		hands []string
		split bool
	}{
		{"Ah Kh Qh 2c 3d", []string{"JhTh", "AsAd"}, false},
		{"As Ks Qs Js Ts", []string{"2c3d", "4h5h", "7d8d"}, true},
		{"3c 4d 5h 9d Kc", []string{"As2d", "7c7s"}, false},
	}

	for _, tc := range cases {
		board, holes, err := parseBoardAndHands(tc.board, tc.hands)
		require.NoError(t, err)
		out, err := evaluate(poker.NewEvaluator(nil), board, holes)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, writeEvalJSON(&buf, out))

		var doc any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
		require.NoError(t, schema.Validate(doc), buf.String())

		var decoded evalJSON
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, tc.split, decoded.Split, tc.board)
	}
}

func TestEvalJSONWheel(t *testing.T) {
	board, holes, err := parseBoardAndHands("3c 4h 5s 9d Kc", []string{"As 2d"})
	require.NoError(t, err)
	out, err := evaluate(poker.NewEvaluator(nil), board, holes)
	require.NoError(t, err)

	doc := newEvalJSON(out)
	require.Len(t, doc.Hands, 1)
	assert.Equal(t, "Straight", doc.Hands[0].Category)
	assert.Equal(t, "5", doc.Hands[0].HighCard)
	assert.Equal(t, []string{"5", "4", "3", "2", "A"}, doc.Hands[0].Tiebreak)
}

func TestPickSeed(t *testing.T) {
	flag, configured := int64(1), int64(2)
	assert.Equal(t, int64(1), pickSeed(&flag, &configured))
	assert.Equal(t, int64(2), pickSeed(nil, &configured))
}

func TestOverridePlayers(t *testing.T) {
	cfg := config.Default()
	cfg.Players[0].Stack = 500

	players := overridePlayers(cfg, []string{"alice", "zed"})
	assert.Equal(t, []config.PlayerConfig{
		{Name: "alice", Stack: 500},
		{Name: "zed", Stack: config.DefaultStack},
	}, players)
}

func TestDealAndRenderHistory(t *testing.T) {
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2025, 11, 14, 15, 22, 0, 0, time.UTC))
	dealer := round.NewDealer(randutil.New(12), clock, zerolog.Nop(), nil)

	seats := seatsFromConfig(config.Default())
	results, err := playRounds(context.Background(), dealer, seats, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	var buf bytes.Buffer
	writeRound(&buf, results[0], false)
	assert.Contains(t, buf.String(), results[0].ID)
	assert.Contains(t, buf.String(), "alice")
	assert.Contains(t, buf.String(), results[0].Seats[0].Ranking.Describe())

	hands := make([]*phh.HandHistory, len(results))
	for i, r := range results {
		hands[i] = r.History()
	}
	path := filepath.Join(t.TempDir(), "rounds.phhs")
	require.NoError(t, phh.WriteFile(path, hands))

	loaded, err := phh.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	buf.Reset()
	require.NoError(t, renderHistory(&buf, loaded[1], false))
	out := buf.String()
	assert.Contains(t, out, results[1].ID)
	assert.Contains(t, out, poker.FormatCards(results[1].Board))
	assert.Contains(t, out, poker.FormatCards(results[1].Seats[1].Hole))
	assert.Contains(t, out, "2025-11-14 15:22:00 UTC")
}

func TestCLIParse(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test", "history_file": "/tmp/h"}, kong.Exit(func(int) {}))
	require.NoError(t, err)

	kctx, err := parser.Parse([]string{"--no-color", "odds", "AsAh", "KsKh", "--board", "2c3d4h", "-i", "500", "--seed", "9"})
	require.NoError(t, err)
	assert.Equal(t, "odds <hands>", kctx.Command())
	assert.True(t, cli.NoColor)
	assert.Equal(t, []string{"AsAh", "KsKh"}, cli.Odds.Hands)
	assert.Equal(t, 500, cli.Odds.Iterations)
	require.NotNil(t, cli.Odds.Seed)
	assert.Equal(t, int64(9), *cli.Odds.Seed)

	kctx, err = parser.Parse([]string{"deal", "-n", "3", "--players", "a,b,c"})
	require.NoError(t, err)
	assert.Equal(t, "deal", kctx.Command())
	assert.Equal(t, 3, cli.Deal.Rounds)
	assert.Equal(t, []string{"a", "b", "c"}, cli.Deal.Players)
}

func TestShellLine(t *testing.T) {
	g, buf := testGlobals(t)
	parser, err := newShellParser(context.Background(), g)
	require.NoError(t, err)

	quit, err := runShellLine(parser, buf, "eval AhKhQh2c3d JhTh AsAd")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Contains(t, buf.String(), "Royal Flush")

	buf.Reset()
	_, err = runShellLine(parser, buf, "odds AsAh 7c2d -i 200 --seed 1 -w 2")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "200 iterations")

	buf.Reset()
	_, err = runShellLine(parser, buf, "help")
	require.NoError(t, err)
	for _, name := range []string{"eval", "odds", "deal", "history", "quit"} {
		assert.Contains(t, buf.String(), name)
	}

	_, err = runShellLine(parser, buf, "eval AhKhQh2c3d JhTh Jh2d")
	assert.Error(t, err)

	quit, err = runShellLine(parser, buf, "  ")
	require.NoError(t, err)
	assert.False(t, quit)

	quit, err = runShellLine(parser, buf, "quit")
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestDealCommandWritesHistory(t *testing.T) {
	g, buf := testGlobals(t)
	path := filepath.Join(t.TempDir(), "out.phhs")
	seed := int64(3)

	cmd := &DealCmd{Rounds: 2, Seed: &seed, History: path, Players: []string{"ann", "ben", "cat"}}
	require.NoError(t, cmd.Run(context.Background(), g))
	assert.Equal(t, 2, strings.Count(buf.String(), "round "))

	hands, err := phh.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, hands, 2)
	assert.Equal(t, []string{"ann", "ben", "cat"}, hands[0].Players)
}

func TestDealCommandStats(t *testing.T) {
	g, buf := testGlobals(t)
	seed := int64(11)

	cmd := &DealCmd{Rounds: 20, Seed: &seed, Stats: true, Players: []string{"ann", "ben"}}
	require.NoError(t, cmd.Run(context.Background(), g))

	out := buf.String()
	assert.Contains(t, out, "results 20 rounds")
	assert.Contains(t, out, "95% CI")
	assert.Contains(t, out, "ann")
	assert.Contains(t, out, "ben")
}

func TestDisplayOdds(t *testing.T) {
	req := equity.Request{
		Holdings:   [][]poker.Card{poker.MustParseCards("AsAh"), poker.MustParseCards("7c2d")},
		Iterations: 500,
		Seed:       1,
		Workers:    2,
	}
	report, err := equity.Estimate(context.Background(), req)
	require.NoError(t, err)

	var buf bytes.Buffer
	displayOdds(&buf, req, report, true)

	out := buf.String()
	assert.Contains(t, out, "Premium")
	assert.Contains(t, out, "Trash")
	assert.Contains(t, out, "One Pair")
	assert.Contains(t, out, "500 iterations")
}
