package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	skafka "github.com/goosetokens/goose-platform-poc/internal/shared/kafka"
	"github.com/goosetokens/goose-platform-poc/pkg/contracts/events"
)

// KafkaPublisher publica os eventos do ciclo de vida de apostas e quests.
// Um writer por tópico.
type KafkaPublisher struct {
	placed   *kafka.Writer
	resolved *kafka.Writer
	quest    *kafka.Writer
}

func NewKafkaPublisher(brokers, topicPlaced, topicResolved, topicQuest string) *KafkaPublisher {
	return &KafkaPublisher{
		placed:   skafka.NewWriter(brokers, topicPlaced),
		resolved: skafka.NewWriter(brokers, topicResolved),
		quest:    skafka.NewWriter(brokers, topicQuest),
	}
}

func (p *KafkaPublisher) PublishBetPlaced(ctx context.Context, e events.BetPlaced) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return skafka.WriteJSON(ctx, p.placed, e.BetID, b)
}

func (p *KafkaPublisher) PublishBetResolved(ctx context.Context, e events.BetResolved) error {
	e.Ts = time.Now()
	b, _ := json.Marshal(e)
	return skafka.WriteJSON(ctx, p.resolved, e.BetID, b)
}

func (p *KafkaPublisher) PublishQuestCompleted(ctx context.Context, e events.QuestCompleted) error {
	e.Ts = time.Now()
	b, _ := json.Marshal(e)
	return skafka.WriteJSON(ctx, p.quest, e.QuestID, b)
}

func (p *KafkaPublisher) Close() error {
	_ = p.placed.Close()
	_ = p.resolved.Close()
	return p.quest.Close()
}
