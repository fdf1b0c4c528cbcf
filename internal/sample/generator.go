package sample

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"vitals-monitor/internal/models"
)

// Range 整数采样范围（含两端）
type Range struct {
	Min int
	Max int
}

// Ranges 各项体征的模拟采样范围
type Ranges struct {
	HeartRate      Range
	SystolicBP     Range
	DiastolicBP    Range
	TemperatureMin float64
	TemperatureMax float64
	Glucose        Range
	SpO2           Range
}

// DefaultRanges 默认模拟范围，覆盖正常与异常区间
func DefaultRanges() Ranges {
	return Ranges{
		HeartRate:      Range{Min: 55, Max: 135},
		SystolicBP:     Range{Min: 95, Max: 175},
		DiastolicBP:    Range{Min: 65, Max: 105},
		TemperatureMin: 36.2,
		TemperatureMax: 39.8,
		Glucose:        Range{Min: 80, Max: 230},
		SpO2:           Range{Min: 88, Max: 100},
	}
}

// Generator 随机生成演示用体征数据
type Generator struct {
	mu     sync.Mutex
	rnd    *rand.Rand
	ranges Ranges
}

// NewGenerator 创建生成器；seed 为 0 时使用当前时间
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		rnd:    rand.New(rand.NewSource(seed)),
		ranges: DefaultRanges(),
	}
}

// Generate returns one random reading within the configured ranges.
func (g *Generator) Generate() models.VitalsReading {
	g.mu.Lock()
	defer g.mu.Unlock()

	temp := g.ranges.TemperatureMin + g.rnd.Float64()*(g.ranges.TemperatureMax-g.ranges.TemperatureMin)

	return models.VitalsReading{
		HeartRate:   g.intn(g.ranges.HeartRate),
		SystolicBP:  g.intn(g.ranges.SystolicBP),
		DiastolicBP: g.intn(g.ranges.DiastolicBP),
		Temperature: math.Round(temp*10) / 10,
		Glucose:     g.intn(g.ranges.Glucose),
		SpO2:        g.intn(g.ranges.SpO2),
	}
}

func (g *Generator) intn(r Range) int {
	return r.Min + g.rnd.Intn(r.Max-r.Min+1)
}
