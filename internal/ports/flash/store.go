package flash

import (
	"context"
	"sync"
	"time"
)

// CookieName lleva la clave del mensaje pendiente entre el redirect y el siguiente request.
const CookieName = "petclinic_flash"

// Kind coincide con el atributo del modelo donde se muestra el mensaje.
type Kind string

const (
	KindMessage Kind = "message"
	KindError   Kind = "error"
)

// Message es un aviso de una sola lectura adjunto a un redirect.
type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

func Info(text string) *Message  { return &Message{Kind: KindMessage, Text: text} }
func Error(text string) *Message { return &Message{Kind: KindError, Text: text} }

// Store guarda mensajes bajo una clave opaca (la lleva una cookie).
// Take es lectura destructiva: un segundo Take de la misma clave no encuentra nada.
type Store interface {
	Put(ctx context.Context, key string, m Message, ttl time.Duration) error
	Take(ctx context.Context, key string) (Message, bool, error)
}

type ctxKey string

const pendingKey ctxKey = "flash"

// pending es la clave que trajo la cookie. El mensaje se lee del store recién
// cuando alguien lo pide (una vista), y a lo sumo una vez por request.
type pending struct {
	store Store
	key   string

	once sync.Once
	msg  Message
	ok   bool
	err  error
}

// NewContext deja la clave pendiente en el contexto sin tocar el store.
func NewContext(ctx context.Context, store Store, key string) context.Context {
	return context.WithValue(ctx, pendingKey, &pending{store: store, key: key})
}

// Pending indica si el request trae una clave de flash (consumida o no).
func Pending(ctx context.Context) bool {
	_, ok := ctx.Value(pendingKey).(*pending)
	return ok
}

// Take consume el mensaje pendiente. Sin clave en el contexto devuelve (Message{}, false, nil).
func Take(ctx context.Context) (Message, bool, error) {
	p, ok := ctx.Value(pendingKey).(*pending)
	if !ok {
		return Message{}, false, nil
	}
	p.once.Do(func() {
		p.msg, p.ok, p.err = p.store.Take(ctx, p.key)
	})
	return p.msg, p.ok, p.err
}
