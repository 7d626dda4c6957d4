// Package queue_publisher pushes booking lifecycle events onto the broker.
// Publishing is best-effort: errors are logged and returned, and the booking
// handlers fire it from a goroutine so a broker outage never slows a request.
package queue_publisher

import (
    "context"
    "encoding/json"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/mtpfood/restaurant-backoffice/internal/queue"
)

// PublishBookingEvent delivers one event to the booking.events queue.  A
// fresh connection per publish keeps the function state-free; event volume
// here is one message per booking mutation, so pooling buys nothing.
func PublishBookingEvent(ctx context.Context, event queue.BookingEvent) error {
    conn, err := amqp.Dial(queue.BrokerURL())
    if err != nil {
        log.Printf("rabbitmq: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Printf("rabbitmq: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    // Declare is idempotent; durable so events survive a broker restart even
    // when the consumer has not started yet.
    if _, err := ch.QueueDeclare(queue.EventQueueName, true, false, false, false, nil); err != nil {
        log.Printf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    body, err := json.Marshal(event)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    err = ch.PublishWithContext(ctx, "", queue.EventQueueName, false, false, amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    })
    if err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        return err
    }
    return nil
}
