package attr

// Default returns the cooked-mode attributes of a freshly opened Linux
// console: canonical input with echo and signals, CR-to-NL input mapping
// and NL-to-CRNL output mapping. In-process terminals start from these.
func Default() Attributes {
	var a Attributes
	a.SetInputFlags(NewFlagSet(BRKINT, ICRNL, IXON, IXANY, IMAXBEL, IUTF8))
	a.SetOutputFlags(NewFlagSet(OPOST, ONLCR))
	a.SetControlFlags(NewFlagSet(CS8, CREAD, HUPCL))
	a.SetLocalFlags(NewFlagSet(ISIG, ICANON, IEXTEN, ECHO, ECHOE, ECHOK, ECHOCTL, ECHOKE))

	for c, v := range map[ControlChar]int{
		VEOF:     4,   // ^D
		VERASE:   127, // ^?
		VWERASE:  23,  // ^W
		VKILL:    21,  // ^U
		VREPRINT: 18,  // ^R
		VINTR:    3,   // ^C
		VQUIT:    28,  // ^\
		VSUSP:    26,  // ^Z
		VDSUSP:   25,  // ^Y
		VSTART:   17,  // ^Q
		VSTOP:    19,  // ^S
		VLNEXT:   22,  // ^V
		VDISCARD: 15,  // ^O
		VMIN:     1,
		VTIME:    0,
		VSTATUS:  20, // ^T
	} {
		a.SetControlChar(c, v)
	}
	return a
}
