package constant

// AsciiArtLogo is rendered above the root command help output.
const AsciiArtLogo = `
  ┬ ┬┌─┐┌─┐┌─┐┌─┐┌─┐┬─┐┌─┐┌┐
  ├─┤│ ││ │├─┘└─┐│ ┬├┬┘├─┤├┴┐
  ┴ ┴└─┘└─┘┴  └─┘└─┘┴└─┴ ┴└─┘`
