package actorutil

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/lltcggie/daikin2mqtt/internal/core/domain"
	"github.com/lltcggie/daikin2mqtt/internal/mqtt"
	"github.com/lltcggie/daikin2mqtt/pkg/dsiot"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/lmittmann/tint"
	"go.uber.org/zap"
)

func PipeToSelfWithRecover(ctx actor.Context, future *actor.Future, mapFn func(error) any) {
	ctx.ReenterAfter(future, func(msg any, err error) {
		if err != nil {
			ctx.Send(ctx.Self(), mapFn(err))
			return
		}
		ctx.Send(ctx.Self(), msg)
	})
}

func NewActorSystemWithZapLogger(logger *zap.Logger) *actor.ActorSystem {
	stdOutLogger := zap.NewStdLog(logger)

	var slogLevel slog.Level = slog.LevelInfo

	switch logger.Level() {
	case zap.DebugLevel:
		slogLevel = slog.LevelDebug
	case zap.InfoLevel:
		slogLevel = slog.LevelInfo
	case zap.WarnLevel:
		slogLevel = slog.LevelWarn
	case zap.ErrorLevel:
		slogLevel = slog.LevelError
	case zap.PanicLevel:
		slogLevel = slog.LevelError
	}

	return actor.NewActorSystem(actor.WithLoggerFactory(func(system *actor.ActorSystem) *slog.Logger {

		// create a new logger
		return slog.New(tint.NewHandler(stdOutLogger.Writer(), &tint.Options{
			Level:      slogLevel,
			TimeFormat: time.DateTime,
		}))
	}))
}

func ActorLogger(actorName string, logger *zap.Logger) *zap.Logger {
	return logger.With(zap.String("actor", actorName))
}

// ParsedMQTTCommandToCommand maps an inbound MQTT command to a typed device
// command. Unknown entities/attributes map to nil; value validation is left
// to the family mapper.
func ParsedMQTTCommandToCommand(cmd mqtt.ParsedMQTTCommand) (domain.ActorRequest, error) {
	switch cmd.Entity {
	case mqtt.ENTITY_CLIMATE:
		switch cmd.Attribute {
		case mqtt.ATTR_MODE:
			if cmd.Payload == "off" {
				return domain.SetPowerRequest{On: false}, nil
			}
			return domain.SetModeRequest{Mode: dsiot.Mode(cmd.Payload)}, nil
		case mqtt.ATTR_TARGET_TEMP:
			value, err := strconv.ParseFloat(cmd.Payload, 64)
			if err != nil {
				return nil, err
			}
			return domain.SetTargetTemperatureRequest{Value: value}, nil
		case mqtt.ATTR_FAN_MODE:
			return domain.SetFanModeRequest{Fan: dsiot.FanMode(cmd.Payload)}, nil
		}
	case mqtt.ENTITY_FAN:
		switch cmd.Attribute {
		case mqtt.ATTR_POWER:
			return domain.SetPowerRequest{On: cmd.Payload == mqtt.MQTT_PAYLOAD_ON}, nil
		case mqtt.ATTR_PRESET_MODE:
			return domain.SetModeRequest{Mode: dsiot.Mode(cmd.Payload)}, nil
		case mqtt.ATTR_PERCENTAGE:
			value, err := strconv.ParseUint(cmd.Payload, 10, 8)
			if err != nil {
				return nil, err
			}
			if value > 100 {
				return nil, errors.New("percentage out of range")
			}
			return domain.SetFanPercentRequest{Percent: int(value)}, nil
		}
	case mqtt.ENTITY_HUMIDIFIER:
		switch cmd.Attribute {
		case mqtt.ATTR_POWER:
			if cmd.Payload == mqtt.MQTT_PAYLOAD_ON {
				return domain.SetHumidifyRequest{Mode: dsiot.HumidifyAuto}, nil
			}
			return domain.SetHumidifyRequest{Mode: dsiot.HumidifyOff}, nil
		case mqtt.ATTR_MODE:
			return domain.SetHumidifyRequest{Mode: dsiot.HumidifyMode(cmd.Payload)}, nil
		case mqtt.ATTR_HUMIDITY:
			value, err := strconv.ParseUint(cmd.Payload, 10, 8)
			if err != nil {
				return nil, err
			}
			if value > 100 {
				return nil, errors.New("target humidity out of range")
			}
			return domain.SetHumidifyPercentRequest{Percent: int(value)}, nil
		}
	}
	return nil, nil
}
