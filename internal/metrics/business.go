package metrics

// IncrementRoleRequest increments the role request submission counter
func (m *Metrics) IncrementRoleRequest() {
	m.safeExecute("IncrementRoleRequest", func() {
		m.RoleRequestsTotal.Inc()
	})
}

// IncrementRoleDecision increments the decision counter for "approve" or "reject"
func (m *Metrics) IncrementRoleDecision(decision string) {
	m.safeExecute("IncrementRoleDecision", func() {
		m.RoleDecisionsTotal.WithLabelValues(decision).Inc()
	})
}

// IncrementActivitySignup increments the slot registration counter
func (m *Metrics) IncrementActivitySignup() {
	m.safeExecute("IncrementActivitySignup", func() {
		m.ActivitySignupsTotal.Inc()
	})
}

// IncrementCapacityRejection increments the full-slot rejection counter
func (m *Metrics) IncrementCapacityRejection() {
	m.safeExecute("IncrementCapacityRejection", func() {
		m.CapacityRejectionsTotal.Inc()
	})
}

// IncrementKick increments the participant removal counter
func (m *Metrics) IncrementKick() {
	m.safeExecute("IncrementKick", func() {
		m.KicksTotal.Inc()
	})
}

// IncrementEmailSent increments the sent email counter
func (m *Metrics) IncrementEmailSent() {
	m.safeExecute("IncrementEmailSent", func() {
		m.EmailsSentTotal.Inc()
	})
}

// IncrementEmailFailed increments the failed email counter
func (m *Metrics) IncrementEmailFailed() {
	m.safeExecute("IncrementEmailFailed", func() {
		m.EmailsFailedTotal.Inc()
	})
}
