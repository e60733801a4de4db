// Package sqlset собирает параметризованный UPDATE из упорядоченного списка
// пар (колонка, значение). Сборка не обращается к базе и тестируется отдельно.
package sqlset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmpty возвращается при попытке собрать UPDATE без единой колонки.
var ErrEmpty = errors.New("sqlset: no columns to update")

// Assignment одна пара «колонка = значение» в SET.
type Assignment struct {
	Column string
	Value  any
}

// Update накапливает присваивания для одной таблицы в порядке добавления.
type Update struct {
	table string
	set   []Assignment
}

// New начинает сборку UPDATE для таблицы table.
func New(table string) *Update {
	return &Update{table: table}
}

// Set добавляет присваивание column = value.
func (u *Update) Set(column string, value any) *Update {
	u.set = append(u.set, Assignment{Column: column, Value: value})
	return u
}

// SetAll добавляет присваивания в переданном порядке.
func (u *Update) SetAll(assignments []Assignment) *Update {
	u.set = append(u.set, assignments...)
	return u
}

// Assignments возвращает накопленные присваивания.
func (u *Update) Assignments() []Assignment {
	return u.set
}

// Build возвращает текст запроса с плейсхолдерами $1..$n и аргументы к нему.
// Значение whereValue всегда идёт последним аргументом.
func (u *Update) Build(whereColumn string, whereValue any, returning ...string) (string, []any, error) {
	if len(u.set) == 0 {
		return "", nil, ErrEmpty
	}

	var b strings.Builder
	args := make([]any, 0, len(u.set)+1)

	fmt.Fprintf(&b, "UPDATE %s SET ", u.table)
	for i, a := range u.set {
		if i > 0 {
			b.WriteString(", ")
		}
		args = append(args, a.Value)
		fmt.Fprintf(&b, "%s = $%d", a.Column, len(args))
	}

	args = append(args, whereValue)
	fmt.Fprintf(&b, " WHERE %s = $%d", whereColumn, len(args))

	if len(returning) > 0 {
		b.WriteString(" RETURNING ")
		b.WriteString(strings.Join(returning, ", "))
	}
	return b.String(), args, nil
}
