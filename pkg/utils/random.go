package utils

import (
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// GenerateID создает уникальный ID сессии
func GenerateID() string {
	return uuid.NewString()
}

// NewSeed возвращает зерно из текущего времени
func NewSeed() int64 {
	return time.Now().UnixNano()
}

// NewRand создает генератор с заданным зерном
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// DeriveSeed смешивает мастер-зерно с меткой (например, номером раунда),
// чтобы каждый раунд получал свою, но воспроизводимую последовательность.
func DeriveSeed(master int64, label string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(label))
	return master ^ int64(h.Sum64())
}
