package ui

// scheduledMsg carries deferred work onto the program's update loop.
type scheduledMsg struct{ fn func() }

type toastExpiredMsg struct{ id int }
