package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/agamariel/transsupply/internal/models"
)

var (
	monthlyRefPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{4,})$`)
	legacyRefPattern  = regexp.MustCompile(`^(\d{4})Q([1-4])-(\d{3,})$`)
)

// RefParts - разобранный внутренний номер заказа.
// Для месячного формата заполнен Month, для старого квартального - Quarter.
type RefParts struct {
	Year     int
	Month    time.Month
	Quarter  int
	Sequence int
	Legacy   bool
}

// GenerateInternalRef возвращает следующий номер вида YYYY-MM-NNNN для месяца now.
// Порядковый номер равен количеству существующих номеров с тем же префиксом плюс один.
//
// TODO: при нескольких экземплярах сервиса нужен счётчик в базе (sequence на префикс),
// мьютекс OrderStore защищает только один процесс.
func GenerateInternalRef(now time.Time, existing []*models.Order) string {
	prefix := fmt.Sprintf("%04d-%02d-", now.Year(), int(now.Month()))

	count := 0
	for _, o := range existing {
		if strings.HasPrefix(o.InternalRef, prefix) {
			count++
		}
	}

	return fmt.Sprintf("%s%04d", prefix, count+1)
}

// ParseInternalRef разбирает номер в формате YYYY-MM-NNNN или YYYYQn-NNN.
func ParseInternalRef(ref string) (RefParts, error) {
	if m := monthlyRefPattern.FindStringSubmatch(ref); m != nil {
		month, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return RefParts{}, fmt.Errorf("invalid month in internal ref %q", ref)
		}
		year, _ := strconv.Atoi(m[1])
		seq, _ := strconv.Atoi(m[3])
		return RefParts{Year: year, Month: time.Month(month), Sequence: seq}, nil
	}

	if m := legacyRefPattern.FindStringSubmatch(ref); m != nil {
		year, _ := strconv.Atoi(m[1])
		quarter, _ := strconv.Atoi(m[2])
		seq, _ := strconv.Atoi(m[3])
		return RefParts{Year: year, Quarter: quarter, Sequence: seq, Legacy: true}, nil
	}

	return RefParts{}, fmt.Errorf("unrecognized internal ref %q", ref)
}
