package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Recovery middleware for panic handling
func Recovery(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			defer func() {
				if r := recover(); r != nil {
					fields := []zap.Field{
						zap.Any("panic", r),
						zap.Stack("stack"),
					}
					if user := c.Sender(); user != nil {
						fields = append(fields, zap.Int64("user_id", user.ID))
					}
					logger.Error("panic recovered", fields...)

					// send error msg to user
					_ = c.Send("😔 Сталася помилка. Будь ласка, спробуйте пізніше.")
				}
			}()

			return next(c)
		}
	}
}
