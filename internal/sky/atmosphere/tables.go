package atmosphere

// perezTable holds the five Perez distribution coefficients as linear
// functions of turbidity: coeff[i] = table[i][0]*T + table[i][1].
type perezTable [5][2]float64

// zenithMatrix rows are cubics in the solar zenith angle, weighted by T², T
// and 1 respectively.
type zenithMatrix [3][4]float64

var (
	// Rows: horizon darkening, horizon gradient, circumsolar intensity,
	// circumsolar width, backscatter.
	perezLuminance = perezTable{
		{0.17872, -1.46303},
		{-0.35540, 0.42749},
		{-0.02266, 5.32505},
		{0.12064, -2.57705},
		{-0.06696, 0.37027},
	}

	perezX = perezTable{
		{-0.01925, -0.25922},
		{-0.06651, 0.00081},
		{-0.00041, 0.21247},
		{-0.06409, -0.89887},
		{-0.00325, 0.04517},
	}

	perezY = perezTable{
		{-0.01669, -0.26078},
		{-0.09495, 0.00921},
		{-0.00792, 0.21023},
		{-0.04405, -1.65369},
		{-0.01092, 0.05291},
	}

	zenithX = zenithMatrix{
		{0.00165, -0.00375, 0.00209, 0.00000},
		{-0.02903, 0.06377, -0.03202, 0.00394},
		{0.11693, -0.21196, 0.06052, 0.25886},
	}

	zenithY = zenithMatrix{
		{0.00275, -0.00610, 0.00317, 0.00000},
		{-0.04214, 0.08970, -0.04153, 0.00516},
		{0.15346, -0.26756, 0.06670, 0.26688},
	}
)

// xyzToRGB is the linear sRGB (D65) conversion matrix.
var xyzToRGB = [3][3]float64{
	{3.240479, -1.537150, -0.498535},
	{-0.969256, 1.875992, 0.041556},
	{0.055648, -0.204043, 1.057311},
}

// coefficients evaluates the table at turbidity t.
func (p *perezTable) coefficients(t float64) [5]float64 {
	var c [5]float64
	for i := range p {
		c[i] = p[i][0]*t + p[i][1]
	}
	return c
}

// eval returns the zenith chromaticity for solar zenith angle theta.
func (m *zenithMatrix) eval(theta, t float64) float64 {
	th2 := theta * theta
	th3 := th2 * theta
	row := func(r [4]float64) float64 {
		return r[0]*th3 + r[1]*th2 + r[2]*theta + r[3]
	}
	return row(m[0])*t*t + row(m[1])*t + row(m[2])
}
