package messaging

import (
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"canteen-system/internal/config"
	"canteen-system/internal/logger"
)

const (
	// OrdersExchange carries placed queue orders to kitchen workers,
	// routed by channel and priority.
	OrdersExchange = "orders_topic"

	// NotificationsExchange fans status updates out to every subscriber.
	NotificationsExchange = "notifications_fanout"

	// KitchenQueue receives every order regardless of channel.
	KitchenQueue = "kitchen_queue"

	// NotificationsQueue receives all status update messages.
	NotificationsQueue = "notifications_queue"
)

const connectRetries = 5

// kitchenQueues maps queue names to their routing key bindings
var kitchenQueues = []struct {
	Name       string
	RoutingKey string
}{
	{KitchenQueue, "kitchen.*.*"},
	{"kitchen_walk_in_queue", "kitchen.walk_in.*"},
	{"kitchen_online_queue", "kitchen.online.*"},
}

// Connection wraps a RabbitMQ connection with reconnection logic
type Connection struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	logger  *logger.Logger
	url     string
}

// New creates a new RabbitMQ connection and declares the topology
func New(cfg *config.Config, log *logger.Logger) (*Connection, error) {
	conn := &Connection{
		logger: log,
		url:    cfg.RabbitMQURL(),
	}

	if err := conn.connect(); err != nil {
		return nil, fmt.Errorf("failed to establish initial connection: %w", err)
	}

	return conn, nil
}

func (c *Connection) connect() error {
	var err error

	for attempt := 1; attempt <= connectRetries; attempt++ {
		c.conn, err = amqp091.Dial(c.url)
		if err == nil {
			c.channel, err = c.conn.Channel()
			if err == nil {
				if setupErr := c.setupTopology(); setupErr != nil {
					c.logger.Error("rabbitmq_setup_failed", "Failed to set up topology", "startup", setupErr, nil)
					c.close()
					err = setupErr
				} else {
					return nil
				}
			} else {
				c.conn.Close()
			}
		}

		if attempt < connectRetries {
			waitTime := time.Duration(attempt) * 2 * time.Second
			c.logger.Error("rabbitmq_connection_failed",
				fmt.Sprintf("Failed to connect to RabbitMQ, retrying in %v", waitTime),
				"startup", err, nil)
			time.Sleep(waitTime)
		}
	}

	return fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", connectRetries, err)
}

func (c *Connection) setupTopology() error {
	err := c.channel.ExchangeDeclare(OrdersExchange, "topic", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare %s exchange: %w", OrdersExchange, err)
	}

	err = c.channel.ExchangeDeclare(NotificationsExchange, "fanout", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare %s exchange: %w", NotificationsExchange, err)
	}

	for _, q := range kitchenQueues {
		_, err = c.channel.QueueDeclare(q.Name, true, false, false, false, amqp091.Table{
			"x-message-ttl": 300000, // orders expire after 5 minutes unconsumed
		})
		if err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", q.Name, err)
		}

		if err = c.channel.QueueBind(q.Name, q.RoutingKey, OrdersExchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue %s with routing key %s: %w", q.Name, q.RoutingKey, err)
		}
	}

	if _, err = c.channel.QueueDeclare(NotificationsQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare notifications queue: %w", err)
	}

	if err = c.channel.QueueBind(NotificationsQueue, "", NotificationsExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind notifications queue: %w", err)
	}

	return nil
}

// Channel returns the current channel
func (c *Connection) Channel() *amqp091.Channel {
	return c.channel
}

// Close closes the connection
func (c *Connection) Close() error {
	return c.close()
}

func (c *Connection) close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsClosed checks if the connection is closed
func (c *Connection) IsClosed() bool {
	return c.conn == nil || c.conn.IsClosed()
}

// Reconnect attempts to reconnect to RabbitMQ
func (c *Connection) Reconnect() error {
	c.close()
	return c.connect()
}

// KitchenQueueForChannels returns the queue a worker with the given
// specializations should consume from.
func KitchenQueueForChannels(channels string) string {
	switch channels {
	case "walk_in":
		return "kitchen_walk_in_queue"
	case "online":
		return "kitchen_online_queue"
	default:
		return KitchenQueue
	}
}
