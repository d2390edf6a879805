package telemetry

import (
	"strconv"

	"github.com/linkbots/servolink/pkg/command"
	"github.com/linkbots/servolink/pkg/servo"
)

// Reporter decorates an actuator so every applied angle is also
// published, as a plain decimal, on the given prefix-relative topic.
// Publish failures never block or fail the actuator write.
type Reporter struct {
	Actuator command.Actuator
	Queue    *Queue
	Topic    string
}

// SetAngle implements command.Actuator.
func (r *Reporter) SetAngle(a servo.Angle) error {
	if err := r.Actuator.SetAngle(a); err != nil {
		return err
	}
	r.Queue.Pub(r.Topic, []byte(strconv.Itoa(int(a))))
	return nil
}
