// Package export writes the aggregate games table to files downstream tools
// consume: CSV always, XLSX when enabled.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gbillga/lol-history-parser/internal/domain"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

var header = []string{
	"match_id",
	"puuid",
	"summoner_folder",
	"queue_id",
	"game_creation",
	"game_duration_s",
	"game_version",
	"map_id",
	"champion_name",
	"champion_id",
	"team_id",
	"team_position",
	"win",
	"kills",
	"deaths",
	"assists",
	"gold_earned",
	"total_minions_killed",
	"total_damage_dealt_to_champions",
	"total_damage_taken",
	"vision_score",
}

type Exporter struct {
	logger zerolog.Logger
}

func NewExporter(logger zerolog.Logger) *Exporter {
	return &Exporter{logger: logger}
}

func (e *Exporter) WriteCSV(path string, games []domain.Game) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, g := range games {
		if err := w.Write(record(g)); err != nil {
			return fmt.Errorf("failed to write row %s/%s: %w", g.MatchID, g.Puuid, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	e.logger.Info().Str("path", path).Int("rows", len(games)).Msg("csv export written")
	return nil
}

func (e *Exporter) WriteXLSX(path string, games []domain.Game) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "games"
	f.SetSheetName("Sheet1", sheet)

	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to build cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	for row, g := range games {
		for col, value := range record(g) {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("failed to build cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}

	e.logger.Info().Str("path", path).Int("rows", len(games)).Msg("xlsx export written")
	return nil
}

func record(g domain.Game) []string {
	return []string{
		g.MatchID,
		g.Puuid,
		g.SummonerFolder,
		strconv.Itoa(g.QueueID),
		g.GameCreation.UTC().Format(time.RFC3339),
		strconv.FormatInt(int64(g.GameDuration/time.Second), 10),
		g.GameVersion,
		strconv.Itoa(g.MapID),
		g.ChampionName,
		strconv.Itoa(g.ChampionID),
		strconv.Itoa(g.TeamID),
		g.TeamPosition,
		strconv.FormatBool(g.Win),
		strconv.Itoa(g.Kills),
		strconv.Itoa(g.Deaths),
		strconv.Itoa(g.Assists),
		strconv.Itoa(g.GoldEarned),
		strconv.Itoa(g.TotalMinionsKilled),
		strconv.Itoa(g.TotalDamageDealtToChampions),
		strconv.Itoa(g.TotalDamageTaken),
		strconv.Itoa(g.VisionScore),
	}
}
