package queue

import (
	"encoding/json"
	"log"

	"github.com/streadway/amqp"
)

// AMQPQueue carries lead events over RabbitMQ so the statistics consumer can
// run in a separate process. Selected when RABBITMQ_URL is set.
type AMQPQueue struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPQueue(url string) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &AMQPQueue{conn: conn, ch: ch}, nil
}

func (q *AMQPQueue) declare(topic string) (amqp.Queue, error) {
	return q.ch.QueueDeclare(
		topic, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
}

func (q *AMQPQueue) Publish(topic string, event LeadEvent) error {
	queue, err := q.declare(topic)
	if err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return q.ch.Publish(
		"",
		queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (q *AMQPQueue) Subscribe(topic string, handler func(event LeadEvent) error) error {
	queue, err := q.declare(topic)
	if err != nil {
		return err
	}

	msgs, err := q.ch.Consume(
		queue.Name,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for d := range msgs {
			var event LeadEvent
			if err := json.Unmarshal(d.Body, &event); err != nil {
				log.Println("Invalid lead event:", err)
				d.Ack(false)
				continue
			}

			if err := handler(event); err != nil {
				log.Println("Failed to process lead event:", err)
				// Requeue up to 3 times
				var retryCount int32
				if d.Headers["x-retry-count"] != nil {
					if n, ok := d.Headers["x-retry-count"].(int32); ok {
						retryCount = n
					}
				}
				if retryCount < 3 {
					d.Nack(false, true)
					continue
				}
			}

			d.Ack(false)
		}
	}()

	return nil
}

func (q *AMQPQueue) Close() {
	if q.ch != nil {
		q.ch.Close()
	}
	if q.conn != nil {
		q.conn.Close()
	}
}

var _ Queue = (*AMQPQueue)(nil)
