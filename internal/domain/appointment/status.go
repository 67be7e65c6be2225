package appointment

import "github.com/lmiguelviana/pet-connect-sub000/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// ===============================
// Validations
// ===============================

// CanConfirm define se um agendamento pode ser confirmado
func CanConfirm(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanStart define se o atendimento pode ser iniciado.
// Confirmação prévia é opcional.
func CanStart(current Status) error {
	if current != StatusScheduled && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	if current != StatusInProgress {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	switch current {
	case StatusScheduled, StatusConfirmed, StatusInProgress:
		return nil
	}
	return httperr.ErrBusiness("invalid_state")
}

// CanMarkNoShow define se um agendamento pode ser marcado como falta
func CanMarkNoShow(current Status) error {
	if current != StatusScheduled && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// Blocks informa se um agendamento neste status ocupa o horário.
// Cancelados e faltas liberam a agenda.
func Blocks(current Status) bool {
	return current != StatusCancelled && current != StatusNoShow
}

// InitialStatus valida status inicial
func InitialStatus() Status {
	return StatusScheduled
}
