package fakedata

const (
	hexAlphabet = "0123456789abcdef"
	avatarURL   = "https://cloudflare-ipfs.com/ipfs/Qmd3W5DuhgHirLHGVixi6V76LhCkZUz6pnFt5AJBiyvHye/avatar/%d.jpg"
	avatarCount = 1249
)
