//go:build linux

package attr

import (
	"golang.org/x/sys/unix"
)

type tcflag = uint32

const (
	ioctlReadTermios  = unix.TCGETS
	ioctlWriteTermios = unix.TCSETS
)

// Zero entries are flags Linux does not have
var inputBits = [numInputFlags]tcflag{
	IGNBRK:  unix.IGNBRK,
	BRKINT:  unix.BRKINT,
	IGNPAR:  unix.IGNPAR,
	PARMRK:  unix.PARMRK,
	INPCK:   unix.INPCK,
	ISTRIP:  unix.ISTRIP,
	INLCR:   unix.INLCR,
	IGNCR:   unix.IGNCR,
	ICRNL:   unix.ICRNL,
	IXON:    unix.IXON,
	IXOFF:   unix.IXOFF,
	IXANY:   unix.IXANY,
	IMAXBEL: unix.IMAXBEL,
	IUTF8:   unix.IUTF8,
}

var outputBits = [numOutputFlags]tcflag{
	OPOST:  unix.OPOST,
	ONLCR:  unix.ONLCR,
	OCRNL:  unix.OCRNL,
	ONOCR:  unix.ONOCR,
	ONLRET: unix.ONLRET,
	OFILL:  unix.OFILL,
	NLDLY:  unix.NLDLY,
	TABDLY: unix.TABDLY,
	CRDLY:  unix.CRDLY,
	FFDLY:  unix.FFDLY,
	BSDLY:  unix.BSDLY,
	VTDLY:  unix.VTDLY,
	OFDEL:  unix.OFDEL,
}

// CS5..CS8 are values of the CSIZE field and handled separately
var controlBits = [numControlFlags]tcflag{
	CSTOPB:     unix.CSTOPB,
	CREAD:      unix.CREAD,
	PARENB:     unix.PARENB,
	PARODD:     unix.PARODD,
	HUPCL:      unix.HUPCL,
	CLOCAL:     unix.CLOCAL,
	CCTS_OFLOW: unix.CRTSCTS,
	CRTS_IFLOW: unix.CRTSCTS,
}

var localBits = [numLocalFlags]tcflag{
	ECHOKE:  unix.ECHOKE,
	ECHOE:   unix.ECHOE,
	ECHOK:   unix.ECHOK,
	ECHO:    unix.ECHO,
	ECHONL:  unix.ECHONL,
	ECHOPRT: unix.ECHOPRT,
	ECHOCTL: unix.ECHOCTL,
	ISIG:    unix.ISIG,
	ICANON:  unix.ICANON,
	IEXTEN:  unix.IEXTEN,
	EXTPROC: unix.EXTPROC,
	TOSTOP:  unix.TOSTOP,
	FLUSHO:  unix.FLUSHO,
	PENDIN:  unix.PENDIN,
	NOFLSH:  unix.NOFLSH,
}

// c_cc indices; -1 marks roles Linux does not have
var ccIndex = [numControlChars]int{
	VEOF:     unix.VEOF,
	VEOL:     unix.VEOL,
	VEOL2:    unix.VEOL2,
	VERASE:   unix.VERASE,
	VWERASE:  unix.VWERASE,
	VKILL:    unix.VKILL,
	VREPRINT: unix.VREPRINT,
	VINTR:    unix.VINTR,
	VQUIT:    unix.VQUIT,
	VSUSP:    unix.VSUSP,
	VDSUSP:   -1,
	VSTART:   unix.VSTART,
	VSTOP:    unix.VSTOP,
	VLNEXT:   unix.VLNEXT,
	VDISCARD: unix.VDISCARD,
	VMIN:     unix.VMIN,
	VTIME:    unix.VTIME,
	VSTATUS:  -1,
}
