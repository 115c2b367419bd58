// Package tagged 提供经过校验的字符串类型（UUID、日期、时间等）。
// Tagged[T] 与原始字符串在值上相同，但在类型上区分“已按 T 校验”。
package tagged

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/betbot/goalpaca/pkg/schema"
)

// Tag 标签：名称 + 校验函数
type Tag interface {
	TagName() string
	Validate(s string) bool
}

// Tagged 已通过 T 校验的字符串
type Tagged[T Tag] string

// String 返回底层字符串
func (v Tagged[T]) String() string { return string(v) }

// New 校验并打标签，失败返回 InvalidFormat
func New[T Tag](raw string) (Tagged[T], error) {
	var tag T
	if !tag.Validate(raw) {
		return "", &schema.ValidationError{Kind: schema.InvalidFormat, Tag: tag.TagName(), Input: raw}
	}
	return Tagged[T](raw), nil
}

// Must 同 New，失败 panic；用于常量与测试
func Must[T Tag](raw string) Tagged[T] {
	v, err := New[T](raw)
	if err != nil {
		panic(err)
	}
	return v
}

// Rule 字段规则：字符串 -> Tagged[T]
func Rule[T Tag]() schema.Rule[Tagged[T]] {
	return schema.RuleFunc(schema.KindStringToTagged, func(raw any) (Tagged[T], error) {
		s, ok := raw.(string)
		if !ok {
			return "", schema.TypeError("string", raw)
		}
		return New[T](s)
	})
}

var uuidPattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// UUIDTag 8-4-4-4-12 十六进制，不区分大小写
type UUIDTag struct{}

func (UUIDTag) TagName() string        { return "UUID" }
func (UUIDTag) Validate(s string) bool { return uuidPattern.MatchString(s) }

// DateTag YYYY-MM-DD
type DateTag struct{}

func (DateTag) TagName() string { return "date" }
func (DateTag) Validate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// TimeTag HH:MM
type TimeTag struct{}

func (TimeTag) TagName() string { return "time" }
func (TimeTag) Validate(s string) bool {
	if len(s) != len(TimeLayout) {
		return false
	}
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// DateTimeTag RFC3339 时间戳。
// 线上规范格式为 6 位小数 + Z，实际响应会裁掉末尾的 0，因此接受 0-9 位小数和时区偏移。
type DateTimeTag struct{}

var dateTimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d{1,9})?(Z|[+-]\d{2}:\d{2})$`)

func (DateTimeTag) TagName() string { return "datetime" }
func (DateTimeTag) Validate(s string) bool {
	if !dateTimePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(time.RFC3339Nano, s)
	return err == nil
}

const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	DateTimeLayout = "2006-01-02T15:04:05.000000Z07:00"
)

type (
	UUID     = Tagged[UUIDTag]
	Date     = Tagged[DateTag]
	Time     = Tagged[TimeTag]
	DateTime = Tagged[DateTimeTag]
)

func UUIDRule() schema.Rule[UUID]         { return Rule[UUIDTag]() }
func DateRule() schema.Rule[Date]         { return Rule[DateTag]() }
func TimeRule() schema.Rule[Time]         { return Rule[TimeTag]() }
func DateTimeRule() schema.Rule[DateTime] { return Rule[DateTimeTag]() }

// NewUUID 校验 UUID
func NewUUID(raw string) (UUID, error) { return New[UUIDTag](raw) }

// NewDate 校验日期
func NewDate(raw string) (Date, error) { return New[DateTag](raw) }

// DateOf 由 time.Time 生成日期
func DateOf(t time.Time) Date { return Date(t.Format(DateLayout)) }

// DateTimeOf 按规范格式（UTC，6 位小数）生成时间戳
func DateTimeOf(t time.Time) DateTime {
	return DateTime(t.UTC().Format(DateTimeLayout))
}

// Time 解析为 time.Time
func (v Tagged[T]) Time() (time.Time, error) {
	var tag T
	switch any(tag).(type) {
	case DateTag:
		return time.Parse(DateLayout, string(v))
	case TimeTag:
		return time.Parse(TimeLayout, string(v))
	default:
		return time.Parse(time.RFC3339Nano, string(v))
	}
}

// NewClientOrderID 生成随机 client_order_id
func NewClientOrderID() UUID { return UUID(uuid.NewString()) }

// UUIDValue 转为 uuid.UUID（统一小写比较时使用）
func UUIDValue(id UUID) (uuid.UUID, error) { return uuid.Parse(strings.ToLower(string(id))) }
