package kafka_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/papercomputeco/marksort/pkg/logger"
	"github.com/papercomputeco/marksort/pkg/visit"
	"github.com/papercomputeco/marksort/pkg/visit/kafka"
)

// queueReader serves queued messages, then blocks until ctx is done.
type queueReader struct {
	messages  []kafkago.Message
	committed []int64
	fetchErr  error
}

func (r *queueReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if r.fetchErr != nil {
		return kafkago.Message{}, r.fetchErr
	}
	if len(r.messages) == 0 {
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *queueReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *queueReader) Close() error { return nil }

var _ = Describe("Source", func() {
	It("implements visit.Source", func() {
		var _ visit.Source = kafka.NewSourceWithReader(&queueReader{}, logger.Nop())
	})

	Describe("NewSource", func() {
		It("validates its config", func() {
			_, err := kafka.NewSource(kafka.Config{Topic: "visits", Logger: logger.Nop()})
			Expect(err).To(HaveOccurred())

			_, err = kafka.NewSource(kafka.Config{Brokers: []string{"localhost:9092"}, Logger: logger.Nop()})
			Expect(err).To(HaveOccurred())
		})
	})

	It("delivers visits and commits every message", func() {
		reader := &queueReader{messages: []kafkago.Message{
			{Offset: 1, Value: []byte(`{"url":"https://a.invalid/x"}`)},
			{Offset: 2, Value: []byte(`{"url":`)},
			{Offset: 3, Value: []byte("https://b.invalid/y")},
		}}
		src := kafka.NewSourceWithReader(reader, logger.Nop())

		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		var got []visit.Visit
		err := src.Run(ctx, func(v visit.Visit) { got = append(got, v) })
		Expect(err).To(MatchError(context.DeadlineExceeded))

		Expect(got).To(HaveLen(2))
		Expect(got[0].URL).To(Equal("https://a.invalid/x"))
		Expect(got[0].Source).To(Equal("kafka"))
		Expect(got[1].URL).To(Equal("https://b.invalid/y"))
		Expect(reader.committed).To(Equal([]int64{1, 2, 3}))
	})

	It("returns fetch failures", func() {
		src := kafka.NewSourceWithReader(&queueReader{fetchErr: errors.New("broker gone")}, logger.Nop())
		err := src.Run(context.Background(), func(visit.Visit) {})
		Expect(err).To(MatchError(ContainSubstring("broker gone")))
	})

	Context("against a live broker", func() {
		var brokers []string

		BeforeEach(func() {
			env := os.Getenv("MARKSORT_TEST_KAFKA_BROKERS")
			if env == "" {
				Skip("MARKSORT_TEST_KAFKA_BROKERS not set")
			}
			brokers = strings.Split(env, ",")
		})

		It("consumes a produced visit", func() {
			topic := "marksort-visits-test"
			w := &kafkago.Writer{Addr: kafkago.TCP(brokers...), Topic: topic, AllowAutoTopicCreation: true}
			defer w.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			Eventually(func() error {
				return w.WriteMessages(ctx, kafkago.Message{Value: []byte(`{"url":"https://live.invalid/"}`)})
			}).WithTimeout(20 * time.Second).Should(Succeed())

			src, err := kafka.NewSource(kafka.Config{
				Brokers: brokers,
				Topic:   topic,
				GroupID: "marksort-test",
				Logger:  logger.Nop(),
			})
			Expect(err).NotTo(HaveOccurred())
			defer src.Close()

			seen := make(chan visit.Visit, 1)
			go func() {
				_ = src.Run(ctx, func(v visit.Visit) {
					select {
					case seen <- v:
					default:
					}
				})
			}()

			Eventually(seen).WithTimeout(25 * time.Second).Should(Receive(HaveField("URL", "https://live.invalid/")))
		})
	})
})
