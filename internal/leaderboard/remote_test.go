package leaderboard

import (
	"context"
	"errors"
	"testing"
)

type fakeRemote struct {
	rows      []Record
	queryErr  error
	insertErr error
	inserted  []Record
	lastQuery Query
}

func (f *fakeRemote) QueryTopN(_ context.Context, q Query) ([]Record, error) {
	f.lastQuery = q
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	out := append([]Record(nil), f.rows...)
	sortDescending(out)
	return truncate(out, q.Limit), nil
}

func (f *fakeRemote) InsertRecord(_ context.Context, table string, r Record) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, r)
	f.rows = append(f.rows, r)
	return nil
}

// fullBoard returns ten rows scoring 170 down to 80.
func fullBoard() []Record {
	rows := make([]Record, 0, Capacity)
	for i := 0; i < Capacity; i++ {
		rows = append(rows, Record{Name: "WLD", Score: 170 - i*10})
	}
	return rows
}

func TestRemoteAdmitsWhileRoom(t *testing.T) {
	f := &fakeRemote{rows: []Record{{Name: "AAA", Score: 100}}}
	r := NewRemote(f)

	adm, err := r.CheckAndSubmit(context.Background(), "ZZZ", 0)
	if err != nil {
		t.Fatalf("CheckAndSubmit() error: %v", err)
	}
	if !adm.Submitted {
		t.Error("score must be submitted while fewer than ten rows exist")
	}
	if adm.Threshold != -1 {
		t.Errorf("threshold = %d, want -1", adm.Threshold)
	}
	if len(f.inserted) != 1 || f.inserted[0].Name != "ZZZ" {
		t.Errorf("inserted = %v", f.inserted)
	}
	if len(adm.Board) != 2 || adm.Board[1].Name != "ZZZ" {
		t.Errorf("board = %v, want newcomer second", adm.Board)
	}
	if f.lastQuery.Table != WorldTable || f.lastQuery.Limit != Capacity || !f.lastQuery.Descending {
		t.Errorf("query = %+v", f.lastQuery)
	}
}

func TestRemoteAdmissionThreshold(t *testing.T) {
	tests := []struct {
		name  string
		score int
		want  bool
	}{
		{"well below", 50, false},
		{"equal to tenth", 80, false},
		{"just above", 81, true},
		{"new leader", 500, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeRemote{rows: fullBoard()}
			adm, err := NewRemote(f).CheckAndSubmit(context.Background(), "NEW", tt.score)
			if err != nil {
				t.Fatalf("CheckAndSubmit() error: %v", err)
			}
			if adm.Submitted != tt.want {
				t.Errorf("submitted = %v, want %v", adm.Submitted, tt.want)
			}
			if adm.Threshold != 80 {
				t.Errorf("threshold = %d, want 80", adm.Threshold)
			}
			if got := len(f.inserted) == 1; got != tt.want {
				t.Errorf("insert happened = %v, want %v", got, tt.want)
			}
			if len(adm.Board) != Capacity {
				t.Errorf("board len = %d, want %d", len(adm.Board), Capacity)
			}
		})
	}
}

func TestRemoteQueryFailure(t *testing.T) {
	f := &fakeRemote{queryErr: errors.New("offline")}
	_, err := NewRemote(f).CheckAndSubmit(context.Background(), "ABC", 10)
	if err == nil {
		t.Fatal("expected error when the board cannot be read")
	}
	if len(f.inserted) != 0 {
		t.Error("nothing may be inserted when the read fails")
	}
}

func TestRemoteInsertFailure(t *testing.T) {
	f := &fakeRemote{insertErr: errors.New("denied")}
	adm, err := NewRemote(f).CheckAndSubmit(context.Background(), "ABC", 10)
	if err == nil {
		t.Fatal("expected insert error")
	}
	if adm.Submitted {
		t.Error("failed insert must not report submission")
	}
}

func TestRemoteRejectsInvalidName(t *testing.T) {
	f := &fakeRemote{}
	_, err := NewRemote(f).CheckAndSubmit(context.Background(), "A", 10)
	if !errors.Is(err, ErrInvalidName) {
		t.Errorf("error = %v, want ErrInvalidName", err)
	}
}

func TestRemoteFetchTopTrims(t *testing.T) {
	rows := append(fullBoard(), Record{Name: "XTR", Score: 5}, Record{Name: "TOP", Score: 999})
	f := &fakeRemote{rows: rows}

	got, err := NewRemote(f).FetchTop(context.Background(), Capacity)
	if err != nil {
		t.Fatalf("FetchTop() error: %v", err)
	}
	if len(got) != Capacity {
		t.Fatalf("len = %d, want %d", len(got), Capacity)
	}
	if got[0].Name != "TOP" {
		t.Errorf("leader = %s, want TOP", got[0].Name)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Fatalf("not descending at %d: %v", i, got)
		}
	}
}

func TestAdmits(t *testing.T) {
	if !Admits(nil, 0) {
		t.Error("empty board admits anything")
	}
	if Admits(fullBoard(), 80) {
		t.Error("tie with the tenth entry is not admitted")
	}
	if !Admits(fullBoard(), 81) {
		t.Error("beating the tenth entry is admitted")
	}
}
