package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgKey
	MsgPointer
	MsgAppExit
	MsgAppShutdown
)

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log_line"
	case MsgKey:
		return "key"
	case MsgPointer:
		return "pointer"
	case MsgAppExit:
		return "app_exit"
	case MsgAppShutdown:
		return "app_shutdown"
	default:
		return "unknown"
	}
}
