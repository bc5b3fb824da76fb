package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// DefaultTopic is where MQTT notifications are published.
const DefaultTopic = "home/button-notify/messages"

// mqttPayload is the published message structure.
type mqttPayload struct {
	Notification struct {
		Timestamp string `json:"timestamp"`
		Text      string `json:"text"`
	} `json:"notification"`
}

// MQTTSender delivers messages to an MQTT broker instead of Telegram.
type MQTTSender struct {
	client paho.Client
	topic  string
}

// NewMQTTSender connects to the broker. The client reconnects on its own;
// Send still fails while disconnected and that failure becomes the message
// outcome.
func NewMQTTSender(broker, clientID, topic string) (*MQTTSender, error) {
	if broker == "" {
		return nil, fmt.Errorf("%w: mqtt broker is required", ErrInvalidArguments)
	}
	if clientID == "" {
		clientID = "button-notify"
	}
	if topic == "" {
		topic = DefaultTopic
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("%w: broker connection timeout", ErrRequest)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: connect to broker: %v", ErrRequest, err)
	}

	return &MQTTSender{client: client, topic: topic}, nil
}

// Send publishes one notification at QoS 1 (at-least-once).
func (m *MQTTSender) Send(ctx context.Context, text string) error {
	var p mqttPayload
	p.Notification.Timestamp = time.Now().UTC().Format(time.RFC3339)
	p.Notification.Text = text

	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("%w: format payload: %v", ErrRequest, err)
	}

	wait := 5 * time.Second
	if d, ok := ctx.Deadline(); ok {
		if until := time.Until(d); until < wait {
			wait = until
		}
	}

	token := m.client.Publish(m.topic, 1, false, payload)
	if !token.WaitTimeout(wait) {
		return fmt.Errorf("%w: publish timeout", ErrResponse)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: publish: %v", ErrResponse, err)
	}
	return nil
}

// IsConnected reports broker connectivity for the status page.
func (m *MQTTSender) IsConnected() bool {
	return m.client.IsConnected()
}

// Close disconnects from the broker.
func (m *MQTTSender) Close() error {
	m.client.Disconnect(1000) // 1 second timeout
	return nil
}
