package interfaces

// ApplicationContext carries a parsed request body and request metadata from
// the transport layer into controllers without tying them to gin directly.
type ApplicationContext[T any] struct {
	Ctx      any
	Body     *T
	DeviceID string
	Param    map[string]any
	Header   map[string][]string
}

func (ac *ApplicationContext[T]) GetHeader(key string) *string {
	values, ok := ac.Header[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func (ac *ApplicationContext[T]) GetStringParameter(key string) string {
	value, ok := ac.Param[key]
	if !ok {
		return ""
	}
	parsed, ok := value.(string)
	if !ok {
		return ""
	}
	return parsed
}
