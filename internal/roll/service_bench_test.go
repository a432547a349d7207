package roll

import (
	"context"
	"testing"

	"github.com/navelogic/rpgbot/internal/dice"
	"github.com/navelogic/rpgbot/internal/domain"
)

// Compare runs with benchstat: go test -bench=Roll -count=10 ./internal/roll > old.txt

func BenchmarkRoll_CacheHit(b *testing.B) {
	svc := NewService(dice.DefaultSource(), DefaultCacheConfig(), nil)
	req := domain.RollRequest{Platform: domain.PlatformHTTP, Username: "bench", Command: "/r 4d6sm1+2"}
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.Roll(ctx, req); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRoll_CacheMiss(b *testing.B) {
	svc := NewService(dice.DefaultSource(), CacheConfig{Size: 1}, nil)
	ctx := context.Background()

	commands := []string{"/r 4d6sm1+2", "/r 2d20m1+5", "/r 3d8*2-1"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := domain.RollRequest{Platform: domain.PlatformHTTP, Username: "bench", Command: commands[i%len(commands)]}
		if _, err := svc.Roll(ctx, req); err != nil {
			b.Fatal(err)
		}
	}
}
