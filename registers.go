package ra8875

// SPI transaction prefixes. Every bus cycle starts with one of these,
// selecting whether the following byte addresses a register or carries data.
const (
	dataWrite byte = 0x00
	dataRead  byte = 0x40
	cmdWrite  byte = 0x80
	cmdRead   byte = 0xC0
)

// Power and clock control
const (
	regPWRR  byte = 0x01 // Power and display control
	regPCSR  byte = 0x04 // Pixel clock setting
	regPLLC1 byte = 0x88 // PLL control 1 (input divider)
	regPLLC2 byte = 0x89 // PLL control 2 (output divider)
)

// Flags for regPWRR
const (
	pwrrDisplayOn byte = 0x80
	pwrrNormal    byte = 0x00
	pwrrSleep     byte = 0x02
	pwrrSoftReset byte = 0x01
)

// Flags for regPCSR
const (
	pcsrDataFalling byte = 0x80 // fetch data at PCLK falling edge
	pcsrClockDiv2   byte = 0x01
	pcsrClockDiv4   byte = 0x02
	pcsrClockDiv8   byte = 0x03
)

// Flags for regPLLC1 and regPLLC2
const (
	pllc1Div1 byte = 0x00
	pllc2Div4 byte = 0x02
)

// System configuration
const (
	regSYSR byte = 0x10 // System configuration (color depth, MCU interface)
	regDPCR byte = 0x20 // Display configuration (layers, scan direction)
)

// Flags for regSYSR
const (
	sysr8bpp  byte = 0x00
	sysr16bpp byte = 0x0C
	sysrMCU8  byte = 0x00
)

// Flags for regDPCR
const (
	dpcrHorizontalFlip byte = 0x08 // reverse SEG scan direction
	dpcrVerticalFlip   byte = 0x04 // reverse COM scan direction
)

// Horizontal timing
const (
	regHDWR   byte = 0x14 // Display width: (HDWR + 1) * 8 pixels
	regHNDFTR byte = 0x15 // Non-display period fine tune
	regHNDR   byte = 0x16 // Non-display period: HNDR * 8 + HNDFTR + 2
	regHSTR   byte = 0x17 // HSYNC start: (HSTR + 1) * 8
	regHPWR   byte = 0x18 // HSYNC pulse width: (HPWR + 1) * 8
)

// Vertical timing
const (
	regVDHR0 byte = 0x19 // Display height low byte: VDHR + 1 lines
	regVDHR1 byte = 0x1A
	regVNDR0 byte = 0x1B // Non-display period: VNDR + 1
	regVNDR1 byte = 0x1C
	regVSTR0 byte = 0x1D // VSYNC start: VSTR + 1
	regVSTR1 byte = 0x1E
	regVPWR  byte = 0x1F // VSYNC pulse width: VPWR + 1
)

// Active window bounds
const (
	regHSAW0 byte = 0x30 // Horizontal start
	regHSAW1 byte = 0x31
	regVSAW0 byte = 0x32 // Vertical start
	regVSAW1 byte = 0x33
	regHEAW0 byte = 0x34 // Horizontal end
	regHEAW1 byte = 0x35
	regVEAW0 byte = 0x36 // Vertical end
	regVEAW1 byte = 0x37
)

// Scroll window bounds and offsets
const (
	regHSSW0 byte = 0x38
	regHSSW1 byte = 0x39
	regVSSW0 byte = 0x3A
	regVSSW1 byte = 0x3B
	regHESW0 byte = 0x3C
	regHESW1 byte = 0x3D
	regVESW0 byte = 0x3E
	regVESW1 byte = 0x3F
	regHOFS0 byte = 0x24
	regHOFS1 byte = 0x25
	regVOFS0 byte = 0x26
	regVOFS1 byte = 0x27
)

// Memory write cursor
const (
	regMRWC  byte = 0x02 // Memory read/write port
	regMWCR0 byte = 0x40 // Memory write control (mode, write direction)
	regMCLR  byte = 0x8E // Memory clear control
	regCURH0 byte = 0x46 // Write cursor horizontal, low byte
	regCURH1 byte = 0x47
	regCURV0 byte = 0x48 // Write cursor vertical, low byte
	regCURV1 byte = 0x49
)

// Flags for regMWCR0
const (
	mwcr0GraphicsMode byte = 0x00
	mwcr0TextMode     byte = 0x80
	mwcr0DirMask      byte = 0x0C // write direction field, see WriteDirection
)

// Flags for regMCLR
const (
	mclrStart      byte = 0x80
	mclrFullWindow byte = 0x00
)

// Drawing engine
const (
	regDCR    byte = 0x90 // Draw command and status
	regDLHSR0 byte = 0x91 // Line/rect start X
	regDLHSR1 byte = 0x92
	regDLVSR0 byte = 0x93 // Line/rect start Y
	regDLVSR1 byte = 0x94
	regDLHER0 byte = 0x95 // Line/rect end X
	regDLHER1 byte = 0x96
	regDLVER0 byte = 0x97 // Line/rect end Y
	regDLVER1 byte = 0x98
	regDCHR0  byte = 0x99 // Circle center X
	regDCHR1  byte = 0x9A
	regDCVR0  byte = 0x9B // Circle center Y
	regDCVR1  byte = 0x9C
	regDCRR   byte = 0x9D // Circle radius
)

// Flags for regDCR. The start bits double as busy-status bits: they read
// back as 1 while the corresponding draw command is executing.
const (
	dcrLineRectStart byte = 0x80
	dcrCircleStart   byte = 0x40
	dcrFill          byte = 0x20
	dcrDrawLine      byte = 0x00
	dcrDrawRect      byte = 0x10
)

// Foreground and background color, one register per channel
const (
	regBGCR0 byte = 0x60 // Background red
	regBGCR1 byte = 0x61 // Background green
	regBGCR2 byte = 0x62 // Background blue
	regFGCR0 byte = 0x63 // Foreground red
	regFGCR1 byte = 0x64 // Foreground green
	regFGCR2 byte = 0x65 // Foreground blue
)

// Interrupt control
const (
	regINTC1 byte = 0xF0 // Interrupt enable
	regINTC2 byte = 0xF1 // Interrupt status, write 1 to clear
)

// Backlight PWM and panel enable
const (
	regP1CR  byte = 0x8A // PWM1 control
	regP1DCR byte = 0x8B // PWM1 duty cycle
	regGPIOX byte = 0xC7 // GPIOX data, wired to display enable on common boards
)

// Flags for regP1CR
const (
	p1crEnable      byte = 0x80
	pwmClockDiv1024 byte = 0x0A
)
