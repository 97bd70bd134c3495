package xpad

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"dio.wtf/xpad/xpad/log"
)

// publisher is the sliver of mqtt.Client the sink uses. Tests fake it.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTSink re-publishes pad state to a broker, one topic per field
// group, touching only the groups whose fields moved. QoS 0 and no
// retention: stale controller state is worse than none.
type MQTTSink struct {
	client mqtt.Client
	pub    publisher
	prefix string
}

type buttonsPayload struct {
	Word uint32   `json:"word"`
	Held []string `json:"held"`
}

type sticksPayload struct {
	LX float64 `json:"lx"`
	LY float64 `json:"ly"`
	RX float64 `json:"rx"`
	RY float64 `json:"ry"`
}

type triggersPayload struct {
	LT float64 `json:"lt"`
	RT float64 `json:"rt"`
}

func NewMQTTSink(broker, prefix, clientID string) (*MQTTSink, error) {
	options := mqtt.NewClientOptions()
	options.AddBroker(broker)
	options.SetClientID(clientID)
	options.SetConnectTimeout(5 * time.Second)

	client := mqtt.NewClient(options)
	token := client.Connect()
	if token.Wait(); nil != token.Error() {
		return nil, fmt.Errorf("connect %s: %w", broker, token.Error())
	}

	log.DebugF("connected to broker %s", broker)
	return &MQTTSink{client: client, pub: client, prefix: prefix}, nil
}

func (m *MQTTSink) Emit(s State, changes ChangeSet) error {
	if changes.Empty() {
		return nil
	}
	if changes.AnyButton() {
		if err := m.publish("buttons", buttonsPayload{Word: uint32(s.Buttons), Held: s.Buttons.Names()}); nil != err {
			return err
		}
	}
	if changes.AnyStick() {
		payload := sticksPayload{
			LX: s.LeftStick.XNorm(),
			LY: s.LeftStick.YNorm(),
			RX: s.RightStick.XNorm(),
			RY: s.RightStick.YNorm(),
		}
		if err := m.publish("sticks", payload); nil != err {
			return err
		}
	}
	if changes.AnyTrigger() {
		payload := triggersPayload{
			LT: s.LeftTrigger.Percent(),
			RT: s.RightTrigger.Percent(),
		}
		if err := m.publish("triggers", payload); nil != err {
			return err
		}
	}
	return nil
}

func (m *MQTTSink) publish(group string, payload any) error {
	data, err := json.Marshal(payload)
	if nil != err {
		return err
	}
	token := m.pub.Publish(m.prefix+"/"+group, 0, false, data)
	if token.Wait(); nil != token.Error() {
		return fmt.Errorf("%w: publish %s: %s", ErrSinkFatal, group, token.Error())
	}
	return nil
}

func (m *MQTTSink) Close() error {
	if m.client != nil {
		m.client.Disconnect(250)
	}
	return nil
}
