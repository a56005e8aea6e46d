package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jengzang/movetank-go/internal/config"
	"github.com/jengzang/movetank-go/internal/database"
	"github.com/jengzang/movetank-go/internal/repository"
)

const sampleCSV = `animal_id,time,x,y,direction,average_speed,c-0,m-a,m-b
a,1,0,0,90,1.0,1,,1
b,1,4,0,180,2.0,1,4,
a,2,1,1,90,1.0,1,,1
b,2,3,1,180,2.0,-1,4,
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "herd.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDatasetName(t *testing.T) {
	if got := datasetName("/data/herd-2019.csv"); got != "herd-2019" {
		t.Errorf("expected herd-2019, got %s", got)
	}
}

func TestDatasetSourceNeedsInput(t *testing.T) {
	var src datasetSource
	if _, _, err := src.load(context.Background(), config.Default()); err == nil {
		t.Error("expected an error without --csv or --dataset")
	}
}

func TestDatasetSourceCSV(t *testing.T) {
	src := datasetSource{csv: writeSample(t)}
	name, ds, err := src.load(context.Background(), config.Default())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if name != "herd" || ds.Len() != 4 {
		t.Errorf("expected herd with 4 records, got %s with %d", name, ds.Len())
	}
}

func TestFrameCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.json")
	rootCmd.SetArgs([]string{"frame", "--csv", writeSample(t), "--strategy", "network", "--time", "2", "--out", out})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("frame failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var frame struct {
		Result struct {
			Renderer string `json:"renderer"`
			Time     int    `json:"time"`
			Entities int    `json:"entities"`
		} `json:"result"`
	}
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatal(err)
	}
	if frame.Result.Renderer != "network" || frame.Result.Time != 2 || frame.Result.Entities != 2 {
		t.Errorf("unexpected frame result %+v", frame.Result)
	}
}

func TestImportCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "movetank.db")
	t.Setenv("DB_PATH", dbPath)

	rootCmd.SetArgs([]string{"import", writeSample(t), "--name", "herd"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	conn, err := database.Open(database.Config{Path: dbPath})
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	records, err := repository.NewRecordRepository(conn).LoadDataset(context.Background(), "herd")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 4 {
		t.Errorf("expected 4 stored records, got %d", len(records))
	}
}
