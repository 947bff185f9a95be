package systems

import "boingle/internal/domain"

// Activate расходует одну активацию гаджета.
// Возвращает false, если гаджет уже выключен: столкновение игнорируется.
// Второе значение - гаджет выключился именно сейчас.
func Activate(g *domain.GadgetComponent) (applied bool, exhausted bool) {
	if !g.Limited() {
		return true, false
	}
	if g.Deactivated || g.ActivationsLeft == 0 {
		g.Deactivated = true
		return false, false
	}

	g.ActivationsLeft--
	if g.ActivationsLeft == 0 {
		g.Deactivated = true
		return true, true
	}
	return true, false
}

// Recharge восстанавливает активации гаджета. true - гаджет был выключен.
func Recharge(g *domain.GadgetComponent) bool {
	wasOff := g.Deactivated
	g.ActivationsLeft = g.ActivationsPerRound
	g.Deactivated = g.Limited() && g.ActivationsPerRound == 0
	return wasOff && !g.Deactivated
}

// ReactivateAll - граница раунда: каждый гаджет получает полный запас
// активаций. Возвращает уведомления о включённых обратно гаджетах.
func ReactivateAll(w *domain.World) []domain.Notification {
	var out []domain.Notification
	w.Each(func(e *domain.Entity) {
		if e.Gadget == nil {
			return
		}
		if Recharge(e.Gadget) {
			out = append(out, domain.Notification{Type: domain.EventGadgetReactivated, Entity: e.ID})
		}
	})
	return out
}
