package main

import "github.com/charmbracelet/lipgloss"

var (
	keyword   = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Render
	paragraph = lipgloss.NewStyle().Width(78).Padding(0, 0, 0, 2).Render

	rangeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	announceMark = lipgloss.NewStyle().Foreground(lipgloss.Color("#F25D94")).Render
	faint        = lipgloss.NewStyle().Faint(true).Render
)
