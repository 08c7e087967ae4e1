package domain

import (
	"rpg-core/internal/core/types/enums"
	"rpg-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Progression - таблица (класс, стат, уровень) -> значение.
// Уровни считаются с 1. Массив уровней, если задан, не пустой.
type Progression struct {
	table map[enums.CharacterClass]map[enums.StatType][]float64
}

func NewProgression() *Progression {
	return &Progression{table: make(map[enums.CharacterClass]map[enums.StatType][]float64)}
}

// SetLevels задаёт значения стата по уровням. Пустой массив игнорируется.
func (p *Progression) SetLevels(class enums.CharacterClass, stat enums.StatType, levels []float64) {
	if len(levels) == 0 {
		return
	}
	stats, ok := p.table[class]
	if !ok {
		stats = make(map[enums.StatType][]float64)
		p.table[class] = stats
	}
	stats[stat] = append([]float64(nil), levels...)
}

// GetStat возвращает значение стата на уровне.
// Уровень <= 0 даёт 0, уровень за концом таблицы - последнее значение.
// Отсутствующий класс или стат логируется и даёт 0.
func (p *Progression) GetStat(stat enums.StatType, class enums.CharacterClass, level int) float64 {
	if level <= 0 {
		return 0
	}
	levels, ok := p.lookup(stat, class)
	if !ok {
		logger.Log.WithFields(logrus.Fields{
			"component": "progression",
			"class":     class.String(),
			"stat":      stat.String(),
		}).Error("Stat is not defined for class")
		return 0
	}
	if level > len(levels) {
		return levels[len(levels)-1]
	}
	return levels[level-1]
}

// Levels возвращает длину массива уровней, 0 если стат не задан.
func (p *Progression) Levels(stat enums.StatType, class enums.CharacterClass) int {
	levels, _ := p.lookup(stat, class)
	return len(levels)
}

// Has - true, если для класса задан стат. Не логирует.
func (p *Progression) Has(stat enums.StatType, class enums.CharacterClass) bool {
	_, ok := p.lookup(stat, class)
	return ok
}

func (p *Progression) lookup(stat enums.StatType, class enums.CharacterClass) ([]float64, bool) {
	if p == nil {
		return nil, false
	}
	stats, ok := p.table[class]
	if !ok {
		return nil, false
	}
	levels, ok := stats[stat]
	if !ok || len(levels) == 0 {
		return nil, false
	}
	return levels, true
}
