package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig describes one search configuration under measurement.
type AgentConfig struct {
	ID          int
	Workers     int
	Nodes       int
	Time        time.Duration
	Noise       float64
	Exploration float64
}

type GameRecord struct {
	ID    int
	White int // AgentConfig.ID
	Black int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// TacticRecord captures one position of the tactics suite.
type TacticRecord struct {
	Position string
	Expected string
	Got      string
	Solved   bool
	SearchMetric
}

// ThroughputRecord captures one timed search at a worker count.
type ThroughputRecord struct {
	Position string
	SearchMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a run directory experiments/<name>/<timestamp> for one
// experiment's result files.
func NewWriter(name string) (*Writer, error) {
	return NewWriterAt(filepath.Join("experiments", name))
}

// NewWriterAt creates a timestamped run directory under dir.
func NewWriterAt(dir string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(dir, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{
		baseDir: baseDir,
	}, nil
}

// BaseDir is the run directory the result files land in.
func (w *Writer) BaseDir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	// Create a file
	path := filepath.Join(w.baseDir, "agent_configs.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create agent configs file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	// Write header
	header := []string{"id", "workers", "nodes", "time", "noise", "exploration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write agent configs header: %w", err)
	}

	// Write each row
	for _, config := range configs {
		row := []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Workers),
			strconv.Itoa(config.Nodes),
			config.Time.String(),
			strconv.FormatFloat(config.Noise, 'f', -1, 64),
			strconv.FormatFloat(config.Exploration, 'f', -1, 64),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write agent config row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	// Create a file
	path := filepath.Join(w.baseDir, "game_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	// Write header
	header := []string{"id", "white", "black", "winner", "start_time", "end_time", "duration", "total_plies"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	// Write each row
	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.White),
			strconv.Itoa(record.Black),
			record.Winner,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalPlies),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	// Create a file
	path := filepath.Join(w.baseDir, "move_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create move records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	// Write header
	header := []string{"game", "ply", "player", "move", "workers", "duration", "rounds", "nodes", "stop_reason"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write move records header: %w", err)
	}

	// Write each row
	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Ply),
			record.Player,
			record.Move,
			strconv.Itoa(record.Workers),
			record.Duration.String(),
			strconv.Itoa(record.Rounds),
			strconv.Itoa(record.Nodes),
			record.StopReason,
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write move record row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteTacticRecords(records []TacticRecord) error {
	// Create a file
	path := filepath.Join(w.baseDir, "tactic_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create tactic records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	// Write header
	header := []string{"position", "expected", "got", "solved", "workers", "duration", "rounds", "nodes", "stop_reason"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write tactic records header: %w", err)
	}

	// Write each row
	for _, record := range records {
		row := []string{
			record.Position,
			record.Expected,
			record.Got,
			strconv.FormatBool(record.Solved),
			strconv.Itoa(record.Workers),
			record.Duration.String(),
			strconv.Itoa(record.Rounds),
			strconv.Itoa(record.Nodes),
			record.StopReason,
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write tactic record row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteThroughputRecords(records []ThroughputRecord) error {
	// Create a file
	path := filepath.Join(w.baseDir, "throughput_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create throughput records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	// Write header
	header := []string{"position", "workers", "duration", "rounds", "nodes", "stop_reason"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write throughput records header: %w", err)
	}

	// Write each row
	for _, record := range records {
		row := []string{
			record.Position,
			strconv.Itoa(record.Workers),
			record.Duration.String(),
			strconv.Itoa(record.Rounds),
			strconv.Itoa(record.Nodes),
			record.StopReason,
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write throughput record row: %w", err)
		}
	}

	return nil
}
