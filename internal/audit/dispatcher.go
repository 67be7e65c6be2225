package audit

import "go.uber.org/zap"

type Event struct {
	PetshopID uint
	UserID    *uint
	Action    string
	Entity    string
	EntityID  *uint
	Metadata  any
}

type Dispatcher struct {
	logger *Logger
	zlog   *zap.Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger, zlog *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		zlog:   zlog,
		queue:  make(chan Event, 100), // buffer seguro
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.PetshopID,
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.zlog.Error("audit write failed", zap.Error(err), zap.String("action", ev.Action))
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	// dispatcher nulo descarta tudo
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		d.zlog.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}
