package quest

import (
	"context"
	"testing"
	"time"
)

func TestSaveEListByUser(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	base := time.Now()
	records := []*Record{
		{QuestID: "q1", UserID: "user-1", Status: "completed", TokensAwarded: 10, CompletedAt: base},
		{QuestID: "q2", UserID: "user-1", Status: "completed", TokensAwarded: 10, CompletedAt: base.Add(time.Second)},
		{QuestID: "q3", UserID: "user-2", Status: "completed", TokensAwarded: 10, CompletedAt: base},
	}
	for _, r := range records {
		if err := m.Save(ctx, r); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	out, err := m.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, esperado 2", len(out))
	}
	if out[0].QuestID != "q1" || out[1].QuestID != "q2" {
		t.Fatalf("ordem errada: %s, %s", out[0].QuestID, out[1].QuestID)
	}
	if out[0].Status != "completed" || out[0].TokensAwarded != 10 {
		t.Fatalf("registro = %+v", out[0])
	}
}

func TestSaveSobrescrevePorQuestID(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	first := time.Now()
	_ = m.Save(ctx, &Record{QuestID: "q1", UserID: "user-1", Status: "completed", CompletedAt: first})
	_ = m.Save(ctx, &Record{QuestID: "q1", UserID: "user-1", Status: "completed", CompletedAt: first.Add(time.Minute)})

	out, _ := m.ListByUser(ctx, "user-1")
	if len(out) != 1 {
		t.Fatalf("len = %d, esperado 1 (upsert por quest_id)", len(out))
	}
	if !out[0].CompletedAt.Equal(first.Add(time.Minute)) {
		t.Fatalf("registro não foi sobrescrito: %+v", out[0])
	}
}

func TestListUsuarioSemQuests(t *testing.T) {
	m := NewMemory()

	out, err := m.ListByUser(context.Background(), "ninguem")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("len = %d, esperado 0", len(out))
	}
}
